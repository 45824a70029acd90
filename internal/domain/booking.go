package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusInfoAdded BookingStatus = "INFO_ADDED"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusFailed    BookingStatus = "FAILED"
)

type Booking struct {
	ID              string
	UserID          string
	FlightID        string
	SeatNo          string
	Status          BookingStatus
	PassengerName   string
	PassengerEmail  string
	FinalPriceCents int64
	PNR             string
	BookingDate     time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CanAddPassengerInfo reports whether passenger details may still be attached.
func (s BookingStatus) CanAddPassengerInfo() bool {
	return s == BookingStatusPending
}

// CanPay reports whether a payment attempt is legal. Passenger info is
// optional: a PENDING booking may go straight to payment.
func (s BookingStatus) CanPay() bool {
	return s == BookingStatusPending || s == BookingStatusInfoAdded
}

// CanCancel reports whether the booking can still be cancelled. CANCELLED
// and FAILED are terminal.
func (s BookingStatus) CanCancel() bool {
	switch s {
	case BookingStatusPending, BookingStatusInfoAdded, BookingStatusConfirmed:
		return true
	}
	return false
}

// HoldsSeat reports whether a booking in this status occupies its seat.
func (s BookingStatus) HoldsSeat() bool {
	return s.CanCancel()
}
