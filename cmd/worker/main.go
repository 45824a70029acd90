package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Abhijith12371/InfosysProject/config"
	"github.com/Abhijith12371/InfosysProject/internal/cache"
	"github.com/Abhijith12371/InfosysProject/internal/email"
	"github.com/Abhijith12371/InfosysProject/internal/kafka"
	"github.com/Abhijith12371/InfosysProject/internal/repository"
	"github.com/Abhijith12371/InfosysProject/internal/service/booking"
	"github.com/Abhijith12371/InfosysProject/internal/service/demand"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.FlightsCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	flightRepo := repository.NewFlightRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	seatInventory := repository.NewSeatInventory(pool)

	bookingService := booking.NewBookingService(
		bookingRepo,
		flightRepo,
		seatInventory,
		redisCache,
		producer,
		cfg.Kafka.BookingTopic,
		time.Duration(cfg.Booking.HoldTTLMinutes)*time.Minute,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)
	simulator := demand.NewSimulator(flightRepo, redisCache)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	emailSender := email.NewSender()

	go func() {
		if err := consumer.Consume(ctx, emailSender.Send); err != nil {
			log.Printf("consumer stopped: %v", err)
		}
	}()

	expireTicker := time.NewTicker(time.Duration(cfg.Worker.ExpirationSweepMinutes) * time.Minute)
	defer expireTicker.Stop()
	demandTicker := time.NewTicker(time.Duration(cfg.Worker.DemandSweepMinutes) * time.Minute)
	defer demandTicker.Stop()

	for {
		select {
		case <-expireTicker.C:
			expired, err := bookingService.ExpirePendingBookings(ctx)
			if err != nil {
				log.Printf("expire bookings error: %v", err)
				continue
			}
			if len(expired) > 0 {
				log.Printf("expired %d bookings", len(expired))
			}
			freed, err := bookingService.ReclaimAbandonedSeats(ctx)
			if err != nil {
				log.Printf("reclaim abandoned seats error: %v", err)
				continue
			}
			if freed > 0 {
				log.Printf("reclaimed %d abandoned seats", freed)
			}
		case <-demandTicker.C:
			updated, err := simulator.Sweep(ctx)
			if err != nil {
				log.Printf("demand sweep error: %v", err)
				continue
			}
			if updated > 0 {
				log.Printf("updated demand factor for %d flights", updated)
			}
		case <-ctx.Done():
			log.Println("shutting down worker")
			return
		}
	}
}
