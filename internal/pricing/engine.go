// Package pricing implements the dynamic fare engine. Every function here is
// pure: prices depend only on the inputs, so a quote computed twice from the
// same flight state is identical.
package pricing

import (
	"math"
	"time"
)

// Demand factors arriving from the simulator are clamped to this range
// before use; the engine never trusts an out-of-range external value.
const (
	MinDemandFactor = 0.8
	MaxDemandFactor = 1.5
)

// Breakdown is the full transparency record for one quote. FinalCents is
// produced by the same arithmetic as Quote, never recomputed separately.
type Breakdown struct {
	BasePriceCents int64   `json:"base_price_cents"`
	SeatFactor     float64 `json:"seat_factor"`
	TimeFactor     float64 `json:"time_factor"`
	DemandFactor   float64 `json:"demand_factor"`
	FinalCents     int64   `json:"final_price_cents"`

	AvailableSeats   int       `json:"available_seats"`
	TotalSeats       int       `json:"total_seats"`
	DepartureTime    time.Time `json:"departure_time"`
	HoursToDeparture float64   `json:"hours_to_departure"`
}

// Quote prices one seat on a flight at the given instant and returns the
// factor breakdown alongside the final price.
func Quote(baseCents int64, availableSeats, totalSeats int, departure, now time.Time, demandFactor float64) Breakdown {
	seatF := SeatFactor(availableSeats, totalSeats)
	timeF := TimeFactor(departure, now)
	demandF := ClampDemand(demandFactor)

	final := roundHalfUp(float64(baseCents) * seatF * timeF * demandF)

	return Breakdown{
		BasePriceCents:   baseCents,
		SeatFactor:       seatF,
		TimeFactor:       timeF,
		DemandFactor:     demandF,
		FinalCents:       final,
		AvailableSeats:   availableSeats,
		TotalSeats:       totalSeats,
		DepartureTime:    departure,
		HoursToDeparture: departure.Sub(now).Hours(),
	}
}

// SeatFactor scales the fare by scarcity. Bands are on the available
// fraction with strict greater-than boundaries: a flight with exactly 80%
// of seats free already prices at 1.2, exactly 20% free at 2.0.
func SeatFactor(availableSeats, totalSeats int) float64 {
	if totalSeats <= 0 {
		return 1.0
	}
	available := float64(availableSeats) / float64(totalSeats)
	switch {
	case available > 0.80:
		return 1.0
	case available > 0.50:
		return 1.2
	case available > 0.20:
		return 1.5
	default:
		return 2.0
	}
}

// TimeFactor scales the fare by urgency, on whole days until departure.
// A departed flight prices at the base factor.
func TimeFactor(departure, now time.Time) float64 {
	until := departure.Sub(now)
	days := int(until.Hours() / 24)
	switch {
	case days > 7:
		return 1.0
	case days >= 3:
		return 1.2
	case days >= 1:
		return 1.3
	case until > 0:
		return 1.5
	default:
		return 1.0
	}
}

// ClampDemand bounds an externally supplied demand factor to
// [MinDemandFactor, MaxDemandFactor].
func ClampDemand(f float64) float64 {
	return math.Min(MaxDemandFactor, math.Max(MinDemandFactor, f))
}

// roundHalfUp rounds to the nearest minor unit with .5 going up.
func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
