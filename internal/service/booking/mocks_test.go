package booking

import (
	"context"
	"time"

	"github.com/Abhijith12371/InfosysProject/internal/domain"
	"github.com/Abhijith12371/InfosysProject/internal/inventory"
	"github.com/Abhijith12371/InfosysProject/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByPNR(ctx context.Context, pnr string) (*domain.Booking, error) {
	args := m.Called(ctx, pnr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) PNRExists(ctx context.Context, pnr string) (bool, error) {
	args := m.Called(ctx, pnr)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindPendingForFlight(ctx context.Context, userID, flightID string) (*domain.Booking, error) {
	args := m.Called(ctx, userID, flightID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id string, from []domain.BookingStatus, to domain.BookingStatus) (*domain.Booking, error) {
	args := m.Called(ctx, id, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) SetPassengerInfo(ctx context.Context, id, name, email string) (*domain.Booking, error) {
	args := m.Called(ctx, id, name, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Confirm(ctx context.Context, id, pnr string, bookingDate time.Time) (*domain.Booking, error) {
	args := m.Called(ctx, id, pnr, bookingDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ExpirePendingBefore(ctx context.Context, deadline time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, deadline)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) Search(ctx context.Context, filter repository.SearchFilter, now time.Time) ([]domain.Flight, error) {
	args := m.Called(ctx, filter, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) ListUpcoming(ctx context.Context, now time.Time) ([]domain.Flight, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) UpdateDemandFactor(ctx context.Context, id string, factor float64) error {
	args := m.Called(ctx, id, factor)
	return args.Error(0)
}

func (m *MockFlightRepository) RecordFareHistory(ctx context.Context, h domain.FareHistory) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockFlightRepository) FareHistory(ctx context.Context, flightID string, limit int) ([]domain.FareHistory, error) {
	args := m.Called(ctx, flightID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FareHistory), args.Error(1)
}

type MockSeatInventory struct {
	mock.Mock
}

func (m *MockSeatInventory) Claim(ctx context.Context, flightID, seatNo, bookingID string) error {
	args := m.Called(ctx, flightID, seatNo, bookingID)
	return args.Error(0)
}

func (m *MockSeatInventory) Release(ctx context.Context, flightID, seatNo string) error {
	args := m.Called(ctx, flightID, seatNo)
	return args.Error(0)
}

func (m *MockSeatInventory) ReleaseAbandoned(ctx context.Context, statuses []domain.BookingStatus) (int64, error) {
	args := m.Called(ctx, statuses)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSeatInventory) Availability(ctx context.Context, flightID string) (*inventory.Availability, error) {
	args := m.Called(ctx, flightID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Availability), args.Error(1)
}

type MockSeatLocker struct {
	mock.Mock
}

func (m *MockSeatLocker) AcquireSeatLock(ctx context.Context, flightID, seatNo string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, flightID, seatNo, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockSeatLocker) ReleaseSeatLock(ctx context.Context, flightID, seatNo string) error {
	args := m.Called(ctx, flightID, seatNo)
	return args.Error(0)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}
