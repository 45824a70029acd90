// Package demand runs the background simulation that nudges per-flight
// demand factors, standing in for real booking-velocity signals.
package demand

import (
	"context"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/Abhijith12371/InfosysProject/internal/domain"
	"github.com/Abhijith12371/InfosysProject/internal/pricing"
	"github.com/Abhijith12371/InfosysProject/internal/repository"
)

// FlightCacheInvalidator drops cached flight listings after a sweep so
// cached prices do not outlive the factors they were computed from.
type FlightCacheInvalidator interface {
	InvalidateFlights(ctx context.Context) error
}

type Simulator struct {
	flights repository.FlightRepository
	cache   FlightCacheInvalidator
	rng     *rand.Rand
	now     func() time.Time
}

type SimulatorOption func(*Simulator)

func WithClock(now func() time.Time) SimulatorOption {
	return func(s *Simulator) {
		s.now = now
	}
}

// WithRand pins the random source, used by tests.
func WithRand(rng *rand.Rand) SimulatorOption {
	return func(s *Simulator) {
		s.rng = rng
	}
}

func NewSimulator(flights repository.FlightRepository, cache FlightCacheInvalidator, opts ...SimulatorOption) *Simulator {
	s := &Simulator{
		flights: flights,
		cache:   cache,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sweep walks every upcoming flight, applies a bounded random adjustment to
// its demand factor and records the resulting fare. Flights close to
// departure drift upward harder. Returns the number of flights updated.
func (s *Simulator) Sweep(ctx context.Context) (int, error) {
	now := s.now()
	flights, err := s.flights.ListUpcoming(ctx, now)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, flight := range flights {
		next := s.nextFactor(flight, now)
		if math.Abs(next-flight.DemandFactor) <= 0.01 {
			continue
		}
		if err := s.flights.UpdateDemandFactor(ctx, flight.ID, next); err != nil {
			log.Printf("update demand factor for flight %s: %v", flight.ID, err)
			continue
		}

		flight.DemandFactor = next
		quote := pricing.Quote(flight.BasePriceCents, flight.AvailableSeats, flight.TotalSeats, flight.DepartureTime, now, next)
		if err := s.flights.RecordFareHistory(ctx, domain.FareHistory{
			FlightID:       flight.ID,
			PriceCents:     quote.FinalCents,
			DemandFactor:   next,
			AvailableSeats: flight.AvailableSeats,
			RecordedAt:     now,
		}); err != nil {
			log.Printf("record fare history for flight %s: %v", flight.ID, err)
		}
		updated++
	}

	if updated > 0 && s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
	return updated, nil
}

func (s *Simulator) nextFactor(flight domain.Flight, now time.Time) float64 {
	hoursUntil := flight.DepartureTime.Sub(now).Hours()

	var adjustment float64
	switch {
	case hoursUntil < 24:
		adjustment = s.uniform(0.05, 0.15)
	case hoursUntil < 72:
		adjustment = s.uniform(-0.05, 0.10)
	default:
		adjustment = s.uniform(-0.10, 0.10)
	}

	next := pricing.ClampDemand(flight.DemandFactor + adjustment)
	return math.Round(next*100) / 100
}

func (s *Simulator) uniform(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}
