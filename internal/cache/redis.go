package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Abhijith12371/InfosysProject/config"
	"github.com/Abhijith12371/InfosysProject/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisCache carries two concerns: a short-lived SetNX lock per (flight,
// seat) that guards the claim path while a hold is alive, and a cache-aside
// store for flight search results.
type RedisCache struct {
	client     *redis.Client
	flightsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, flightsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		flightsTTL: flightsTTL,
	}
}

func (c *RedisCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	data, err := c.client.Get(ctx, flightsKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var flights []domain.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *RedisCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, flightsKey(), payload, c.flightsTTL).Err()
}

// InvalidateFlights drops the cached search results, called when demand
// factors change so stale prices are not served past the sweep.
func (c *RedisCache) InvalidateFlights(ctx context.Context) error {
	return c.client.Del(ctx, flightsKey()).Err()
}

func (c *RedisCache) AcquireSeatLock(ctx context.Context, flightID, seatNo string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, seatLockKey(flightID, seatNo), "locked", ttl).Result()
}

func (c *RedisCache) ReleaseSeatLock(ctx context.Context, flightID, seatNo string) error {
	return c.client.Del(ctx, seatLockKey(flightID, seatNo)).Err()
}

func flightsKey() string {
	return "cache:flights"
}

func seatLockKey(flightID, seatNo string) string {
	return fmt.Sprintf("lock:flight:%s:seat:%s", flightID, seatNo)
}
