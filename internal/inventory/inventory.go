// Package inventory is the source of truth for per-flight seat occupancy.
package inventory

import (
	"context"

	"github.com/Abhijith12371/InfosysProject/internal/domain"
)

// Availability is a point-in-time snapshot of a flight's seat map.
type Availability struct {
	FlightID       string   `json:"flight_id"`
	TotalSeats     int      `json:"total_seats"`
	AvailableCount int      `json:"available_count"`
	AvailableSeats []string `json:"available_seats"`
	BookedSeats    []string `json:"booked_seats"`
}

// SeatInventory tracks which seats are held and by whom. Claim must be
// linearizable per (flight, seat): of two concurrent claims on the same
// seat exactly one succeeds.
type SeatInventory interface {
	// Claim marks a seat HELD by bookingID if and only if it is currently
	// available. Returns domain.ErrSeatUnavailable when another booking
	// holds it, domain.ErrFlightNotFound / domain.ErrSeatNotFound when the
	// target does not exist.
	Claim(ctx context.Context, flightID, seatNo, bookingID string) error

	// Release marks a seat available again. Releasing a seat that is
	// already available is a no-op.
	Release(ctx context.Context, flightID, seatNo string) error

	// Availability returns a snapshot of the flight's seat map.
	Availability(ctx context.Context, flightID string) (*Availability, error)
}

// AbandonedReleaser frees seats whose holding booking has reached one of
// the given statuses. A seat release that fails or is lost to a crash
// after the booking's status write leaves the seat held by a terminal
// booking; the worker sweep uses this to return such seats to sale.
type AbandonedReleaser interface {
	ReleaseAbandoned(ctx context.Context, statuses []domain.BookingStatus) (int64, error)
}
