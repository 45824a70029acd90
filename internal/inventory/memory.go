package inventory

import (
	"context"
	"sort"
	"sync"

	"github.com/Abhijith12371/InfosysProject/internal/domain"
)

// MemoryInventory keeps the seat map of each flight in process memory,
// serialized by a per-flight mutex. It backs the service when no database
// is configured and carries the concurrency tests for the claim contract.
type MemoryInventory struct {
	mu      sync.RWMutex
	flights map[string]*flightSeats
}

type flightSeats struct {
	mu    sync.Mutex
	order []string
	// heldBy maps seat label to the booking holding it; absent means free.
	heldBy map[string]string
}

func NewMemoryInventory() *MemoryInventory {
	return &MemoryInventory{flights: make(map[string]*flightSeats)}
}

// AddFlight registers a flight's seat map. Existing state for the flight is
// replaced.
func (m *MemoryInventory) AddFlight(flightID string, totalSeats int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flights[flightID] = &flightSeats{
		order:  domain.SeatLabels(totalSeats),
		heldBy: make(map[string]string),
	}
}

func (m *MemoryInventory) flight(flightID string) (*flightSeats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	fs, ok := m.flights[flightID]
	if !ok {
		return nil, domain.ErrFlightNotFound
	}
	return fs, nil
}

func (m *MemoryInventory) Claim(ctx context.Context, flightID, seatNo, bookingID string) error {
	fs, err := m.flight(flightID)
	if err != nil {
		return err
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if !contains(fs.order, seatNo) {
		return domain.ErrSeatNotFound
	}
	if _, held := fs.heldBy[seatNo]; held {
		return domain.ErrSeatUnavailable
	}
	fs.heldBy[seatNo] = bookingID
	return nil
}

func (m *MemoryInventory) Release(ctx context.Context, flightID, seatNo string) error {
	fs, err := m.flight(flightID)
	if err != nil {
		return err
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()
	delete(fs.heldBy, seatNo)
	return nil
}

func (m *MemoryInventory) Availability(ctx context.Context, flightID string) (*Availability, error) {
	fs, err := m.flight(flightID)
	if err != nil {
		return nil, err
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	avail := &Availability{
		FlightID:       flightID,
		TotalSeats:     len(fs.order),
		AvailableSeats: make([]string, 0, len(fs.order)-len(fs.heldBy)),
		BookedSeats:    make([]string, 0, len(fs.heldBy)),
	}
	for _, seat := range fs.order {
		if _, held := fs.heldBy[seat]; held {
			avail.BookedSeats = append(avail.BookedSeats, seat)
		} else {
			avail.AvailableSeats = append(avail.AvailableSeats, seat)
		}
	}
	avail.AvailableCount = len(avail.AvailableSeats)
	sort.Strings(avail.BookedSeats)
	return avail, nil
}

func contains(seats []string, seat string) bool {
	for _, s := range seats {
		if s == seat {
			return true
		}
	}
	return false
}

var _ SeatInventory = (*MemoryInventory)(nil)
