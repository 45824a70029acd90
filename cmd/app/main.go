package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Abhijith12371/InfosysProject/config"
	"github.com/Abhijith12371/InfosysProject/internal/bootstrap"
	"github.com/Abhijith12371/InfosysProject/internal/cache"
	"github.com/Abhijith12371/InfosysProject/internal/kafka"
	"github.com/Abhijith12371/InfosysProject/internal/repository"
	"github.com/Abhijith12371/InfosysProject/internal/service/booking"
	"github.com/Abhijith12371/InfosysProject/internal/service/flights"
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

	flightService := flights.NewFlightService(flightRepo, seatInventory, redisCache)
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

	if err := bootstrap.Run(ctx, cfg, flightService, bookingService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
