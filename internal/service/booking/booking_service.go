package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Abhijith12371/InfosysProject/internal/domain"
	"github.com/Abhijith12371/InfosysProject/internal/inventory"
	"github.com/Abhijith12371/InfosysProject/internal/kafka"
	"github.com/Abhijith12371/InfosysProject/internal/pnr"
	"github.com/Abhijith12371/InfosysProject/internal/pricing"
	"github.com/Abhijith12371/InfosysProject/internal/repository"
	"github.com/google/uuid"
)

type BookingUseCase interface {
	SelectSeat(ctx context.Context, input SelectSeatInput) (*domain.Booking, error)
	AddPassengerInfo(ctx context.Context, bookingID, userID, name, email string) (*domain.Booking, error)
	ProcessPayment(ctx context.Context, bookingID, userID string, card PaymentCard) (*PaymentResult, error)
	Cancel(ctx context.Context, bookingID, userID string) (*CancellationResult, error)
	GetByID(ctx context.Context, bookingID, userID string) (*domain.Booking, error)
	LookupByPNR(ctx context.Context, code string) (*domain.Booking, error)
	History(ctx context.Context, userID string) ([]domain.Booking, error)
	ExpirePendingBookings(ctx context.Context) ([]domain.Booking, error)
	ReclaimAbandonedSeats(ctx context.Context) (int64, error)
}

// SeatLocker is the redis-backed hold guard. A nil locker disables it; the
// inventory claim remains the authoritative double-booking barrier.
type SeatLocker interface {
	AcquireSeatLock(ctx context.Context, flightID, seatNo string, ttl time.Duration) (bool, error)
	ReleaseSeatLock(ctx context.Context, flightID, seatNo string) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type SelectSeatInput struct {
	UserID   string `json:"user_id"`
	FlightID string `json:"flight_id"`
	SeatNo   string `json:"seat_no"`
}

type PaymentCard struct {
	CardNumber  string `json:"card_number"`
	ExpiryMonth int    `json:"expiry_month"`
	ExpiryYear  int    `json:"expiry_year"`
	CVV         string `json:"cvv"`
}

type PaymentStatus string

const (
	PaymentSuccess PaymentStatus = "SUCCESS"
	PaymentFailure PaymentStatus = "FAILURE"
)

// PaymentResult is the outcome of a payment attempt. A decline is a normal
// FAILURE result, not an error.
type PaymentResult struct {
	Status  PaymentStatus
	Booking *domain.Booking
}

type CancellationResult struct {
	Booking     *domain.Booking
	RefundCents int64
}

type BookingService struct {
	bookings           repository.BookingRepository
	flights            repository.FlightRepository
	seats              inventory.SeatInventory
	locker             SeatLocker
	producer           Producer
	pnrGen             *pnr.Generator
	bookingTopic       string
	notificationsTopic string
	holdTTL            time.Duration
	now                func() time.Time
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

// WithClock overrides the time source, used by tests.
func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	flights repository.FlightRepository,
	seats inventory.SeatInventory,
	locker SeatLocker,
	producer Producer,
	bookingTopic string,
	holdTTL time.Duration,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		flights:      flights,
		seats:        seats,
		locker:       locker,
		producer:     producer,
		bookingTopic: bookingTopic,
		holdTTL:      holdTTL,
		now:          time.Now,
	}
	service.pnrGen = pnr.NewGenerator(bookings.PNRExists)
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// SelectSeat claims a seat and opens a PENDING booking priced at claim time.
// The claim and the booking row are created as a unit: if the row insert
// fails the claim is compensated, so no orphan hold survives.
func (s *BookingService) SelectSeat(ctx context.Context, input SelectSeatInput) (*domain.Booking, error) {
	seatNo := domain.NormalizeSeat(input.SeatNo)
	if input.UserID == "" {
		return nil, errors.New("user id is required")
	}

	flight, err := s.flights.GetByID(ctx, input.FlightID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if !flight.DepartureTime.After(now) {
		return nil, domain.ErrFlightDeparted
	}
	if flight.AvailableSeats <= 0 {
		return nil, domain.ErrNoSeatsLeft
	}
	if !domain.ValidSeat(seatNo, flight.TotalSeats) {
		return nil, domain.ErrSeatNotFound
	}

	// A user re-selecting on the same flight abandons their previous hold.
	if prev, err := s.bookings.FindPendingForFlight(ctx, input.UserID, input.FlightID); err == nil {
		s.abandonPending(ctx, prev)
	}

	bookingID := uuid.NewString()

	locked := false
	if s.locker != nil {
		ok, err := s.locker.AcquireSeatLock(ctx, input.FlightID, seatNo, s.holdTTL)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrSeatUnavailable
		}
		locked = true
	}

	if err := s.seats.Claim(ctx, input.FlightID, seatNo, bookingID); err != nil {
		if locked {
			_ = s.locker.ReleaseSeatLock(ctx, input.FlightID, seatNo)
		}
		return nil, err
	}

	quote := pricing.Quote(flight.BasePriceCents, flight.AvailableSeats, flight.TotalSeats, flight.DepartureTime, now, flight.DemandFactor)

	booking := &domain.Booking{
		ID:              bookingID,
		UserID:          input.UserID,
		FlightID:        input.FlightID,
		SeatNo:          seatNo,
		Status:          domain.BookingStatusPending,
		FinalPriceCents: quote.FinalCents,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		_ = s.seats.Release(ctx, input.FlightID, seatNo)
		if locked {
			_ = s.locker.ReleaseSeatLock(ctx, input.FlightID, seatNo)
		}
		return nil, err
	}

	s.publish(ctx, kafka.EventBookingCreated, booking, 0)
	return booking, nil
}

func (s *BookingService) AddPassengerInfo(ctx context.Context, bookingID, userID, name, email string) (*domain.Booking, error) {
	if name == "" || email == "" {
		return nil, errors.New("passenger name and email are required")
	}

	current, err := s.ownedBooking(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanAddPassengerInfo() {
		return nil, domain.ErrInvalidState
	}

	updated, err := s.bookings.SetPassengerInfo(ctx, bookingID, name, email)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, kafka.EventPassengerAdded, updated, 0)
	return updated, nil
}

// ProcessPayment settles a PENDING or INFO_ADDED booking. Invalid card
// details are a simulated decline: the booking moves to FAILED and the seat
// goes back on sale. A valid card confirms the booking under a fresh PNR.
func (s *BookingService) ProcessPayment(ctx context.Context, bookingID, userID string, card PaymentCard) (*PaymentResult, error) {
	current, err := s.ownedBooking(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanPay() {
		return nil, domain.ErrInvalidState
	}

	if !validCard(card, s.now()) {
		updated, err := s.bookings.UpdateStatus(ctx, bookingID,
			[]domain.BookingStatus{domain.BookingStatusPending, domain.BookingStatusInfoAdded},
			domain.BookingStatusFailed)
		if err != nil {
			return nil, err
		}
		s.releaseSeat(ctx, updated.FlightID, updated.SeatNo)
		s.publish(ctx, kafka.EventBookingFailed, updated, 0)
		return &PaymentResult{Status: PaymentFailure, Booking: updated}, nil
	}

	code, err := s.pnrGen.Generate(ctx)
	if err != nil {
		if errors.Is(err, pnr.ErrExhausted) {
			log.Printf("FATAL: pnr space exhausted confirming booking %s: %v", bookingID, err)
		}
		return nil, fmt.Errorf("generate pnr: %w", err)
	}

	updated, err := s.bookings.Confirm(ctx, bookingID, code, s.now())
	if err != nil {
		return nil, err
	}
	// The hold guard has done its job; the inventory claim now carries the
	// confirmed seat.
	if s.locker != nil {
		_ = s.locker.ReleaseSeatLock(ctx, updated.FlightID, updated.SeatNo)
	}
	s.publish(ctx, kafka.EventBookingConfirmed, updated, 0)
	return &PaymentResult{Status: PaymentSuccess, Booking: updated}, nil
}

// Cancel releases the seat and computes the refund due. Only the owner may
// cancel, and only from PENDING, INFO_ADDED or CONFIRMED.
func (s *BookingService) Cancel(ctx context.Context, bookingID, userID string) (*CancellationResult, error) {
	current, err := s.ownedBooking(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}
	if current.Status == domain.BookingStatusCancelled {
		return nil, domain.ErrAlreadyCancelled
	}
	if !current.Status.CanCancel() {
		return nil, domain.ErrInvalidState
	}
	// The refund is settled before any state changes: if the flight cannot
	// be loaded the caller gets an error and the booking stays as it was,
	// never a cancelled booking with a zero refund.
	var refund int64
	if current.Status == domain.BookingStatusConfirmed {
		flight, err := s.flights.GetByID(ctx, current.FlightID)
		if err != nil {
			return nil, fmt.Errorf("load flight for refund: %w", err)
		}
		refund = pricing.Refund(current.FinalPriceCents, flight.DepartureTime, s.now())
	}

	updated, err := s.bookings.UpdateStatus(ctx, bookingID,
		[]domain.BookingStatus{domain.BookingStatusPending, domain.BookingStatusInfoAdded, domain.BookingStatusConfirmed},
		domain.BookingStatusCancelled)
	if err != nil {
		return nil, err
	}
	s.releaseSeat(ctx, updated.FlightID, updated.SeatNo)

	s.publish(ctx, kafka.EventBookingCancelled, updated, refund)
	return &CancellationResult{Booking: updated, RefundCents: refund}, nil
}

func (s *BookingService) GetByID(ctx context.Context, bookingID, userID string) (*domain.Booking, error) {
	return s.ownedBooking(ctx, bookingID, userID)
}

// LookupByPNR is public: the code itself is the credential.
func (s *BookingService) LookupByPNR(ctx context.Context, code string) (*domain.Booking, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, domain.ErrBookingNotFound
	}
	return s.bookings.GetByPNR(ctx, code)
}

func (s *BookingService) History(ctx context.Context, userID string) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

// ExpirePendingBookings sweeps holds older than the hold TTL back to
// CANCELLED and returns the seats to inventory.
func (s *BookingService) ExpirePendingBookings(ctx context.Context) ([]domain.Booking, error) {
	deadline := s.now().Add(-s.holdTTL)
	expired, err := s.bookings.ExpirePendingBefore(ctx, deadline)
	if err != nil {
		return nil, err
	}
	for i := range expired {
		b := &expired[i]
		s.releaseSeat(ctx, b.FlightID, b.SeatNo)
		s.publish(ctx, kafka.EventBookingExpired, b, 0)
	}
	return expired, nil
}

// ReclaimAbandonedSeats frees seats still held by cancelled or failed
// bookings. A release inside the payment and cancellation paths is logged
// on failure, not retried; this sweep is what guarantees such seats
// eventually return to sale.
func (s *BookingService) ReclaimAbandonedSeats(ctx context.Context) (int64, error) {
	releaser, ok := s.seats.(inventory.AbandonedReleaser)
	if !ok {
		return 0, nil
	}
	return releaser.ReleaseAbandoned(ctx,
		[]domain.BookingStatus{domain.BookingStatusCancelled, domain.BookingStatusFailed})
}

func (s *BookingService) ownedBooking(ctx context.Context, bookingID, userID string) (*domain.Booking, error) {
	current, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if current.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return current, nil
}

func (s *BookingService) abandonPending(ctx context.Context, prev *domain.Booking) {
	updated, err := s.bookings.UpdateStatus(ctx, prev.ID,
		[]domain.BookingStatus{domain.BookingStatusPending}, domain.BookingStatusCancelled)
	if err != nil {
		return
	}
	s.releaseSeat(ctx, updated.FlightID, updated.SeatNo)
	s.publish(ctx, kafka.EventBookingCancelled, updated, 0)
}

func (s *BookingService) releaseSeat(ctx context.Context, flightID, seatNo string) {
	if err := s.seats.Release(ctx, flightID, seatNo); err != nil {
		log.Printf("release seat %s on flight %s: %v", seatNo, flightID, err)
	}
	if s.locker != nil {
		_ = s.locker.ReleaseSeatLock(ctx, flightID, seatNo)
	}
}

func (s *BookingService) publish(ctx context.Context, eventType string, b *domain.Booking, refundCents int64) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:            eventType,
		BookingID:       b.ID,
		UserID:          b.UserID,
		FlightID:        b.FlightID,
		SeatNo:          b.SeatNo,
		Status:          string(b.Status),
		PNR:             b.PNR,
		PassengerEmail:  b.PassengerEmail,
		FinalPriceCents: b.FinalPriceCents,
		RefundCents:     refundCents,
		OccurredAt:      s.now(),
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, b.ID, event); err != nil {
		log.Printf("WARNING: failed to publish %s for booking %s: %v", eventType, b.ID, err)
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, b.ID, event); err != nil {
			log.Printf("WARNING: failed to publish %s notification for booking %s: %v", eventType, b.ID, err)
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
