package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Abhijith12371/InfosysProject/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetByPNR(ctx context.Context, pnr string) (*domain.Booking, error)
	PNRExists(ctx context.Context, pnr string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Booking, error)
	FindPendingForFlight(ctx context.Context, userID, flightID string) (*domain.Booking, error)

	// UpdateStatus flips the booking from one of the expected statuses to
	// the target status. When the booking exists but its status has already
	// moved on (a concurrent transition won), it returns
	// domain.ErrInvalidState so the caller observes the settled state.
	UpdateStatus(ctx context.Context, id string, from []domain.BookingStatus, to domain.BookingStatus) (*domain.Booking, error)

	SetPassengerInfo(ctx context.Context, id, name, email string) (*domain.Booking, error)
	Confirm(ctx context.Context, id, pnr string, bookingDate time.Time) (*domain.Booking, error)
	ExpirePendingBefore(ctx context.Context, deadline time.Time) ([]domain.Booking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `id, user_id, flight_id, seat_no, status, coalesce(passenger_name, ''), coalesce(passenger_email, ''), final_price_cents, coalesce(pnr, ''), coalesce(booking_date, 'epoch'::timestamptz), created_at, updated_at`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.UserID, &b.FlightID, &b.SeatNo, &b.Status, &b.PassengerName, &b.PassengerEmail, &b.FinalPriceCents, &b.PNR, &b.BookingDate, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	booking.Status = domain.BookingStatusPending
	return r.db.QueryRow(ctx, `INSERT INTO bookings (id, user_id, flight_id, seat_no, status, final_price_cents)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`,
		booking.ID, booking.UserID, booking.FlightID, booking.SeatNo, booking.Status, booking.FinalPriceCents).
		Scan(&booking.CreatedAt, &booking.UpdatedAt)
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrBookingNotFound
	}
	return b, err
}

func (r *PGBookingRepository) GetByPNR(ctx context.Context, pnr string) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE pnr=$1`, pnr))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrBookingNotFound
	}
	return b, err
}

func (r *PGBookingRepository) PNRExists(ctx context.Context, pnr string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM bookings WHERE pnr=$1)`, pnr).Scan(&exists)
	return exists, err
}

func (r *PGBookingRepository) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *PGBookingRepository) FindPendingForFlight(ctx context.Context, userID, flightID string) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE user_id=$1 AND flight_id=$2 AND status=$3 LIMIT 1`,
		userID, flightID, domain.BookingStatusPending))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrBookingNotFound
	}
	return b, err
}

func (r *PGBookingRepository) UpdateStatus(ctx context.Context, id string, from []domain.BookingStatus, to domain.BookingStatus) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, `UPDATE bookings SET status=$1, updated_at=now()
		WHERE id=$2 AND status = ANY($3) RETURNING `+bookingColumns, to, id, statusStrings(from)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, r.classifyMiss(ctx, id)
	}
	return b, err
}

func (r *PGBookingRepository) SetPassengerInfo(ctx context.Context, id, name, email string) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, `UPDATE bookings SET passenger_name=$1, passenger_email=$2, status=$3, updated_at=now()
		WHERE id=$4 AND status=$5 RETURNING `+bookingColumns,
		name, email, domain.BookingStatusInfoAdded, id, domain.BookingStatusPending))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, r.classifyMiss(ctx, id)
	}
	return b, err
}

func (r *PGBookingRepository) Confirm(ctx context.Context, id, pnr string, bookingDate time.Time) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, `UPDATE bookings SET status=$1, pnr=$2, booking_date=$3, updated_at=now()
		WHERE id=$4 AND status = ANY($5) RETURNING `+bookingColumns,
		domain.BookingStatusConfirmed, pnr, bookingDate, id,
		statusStrings([]domain.BookingStatus{domain.BookingStatusPending, domain.BookingStatusInfoAdded})))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, r.classifyMiss(ctx, id)
	}
	return b, err
}

func (r *PGBookingRepository) ExpirePendingBefore(ctx context.Context, deadline time.Time) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `UPDATE bookings SET status=$1, updated_at=now()
		WHERE status=$2 AND created_at <= $3 RETURNING `+bookingColumns,
		domain.BookingStatusCancelled, domain.BookingStatusPending, deadline)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expired := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		expired = append(expired, *b)
	}
	return expired, rows.Err()
}

// classifyMiss distinguishes "no such booking" from "booking moved on".
func (r *PGBookingRepository) classifyMiss(ctx context.Context, id string) error {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM bookings WHERE id=$1)`, id).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return domain.ErrInvalidState
	}
	return domain.ErrBookingNotFound
}

func statusStrings(statuses []domain.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

var _ BookingRepository = (*PGBookingRepository)(nil)
