package repository

import (
	"context"
	"errors"

	"github.com/Abhijith12371/InfosysProject/internal/domain"
	"github.com/Abhijith12371/InfosysProject/internal/inventory"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGSeatInventory persists seat occupancy in the seats table. A claim is a
// single conditional UPDATE, so two concurrent claims on one seat can never
// both succeed: the row either still has booking_id NULL or it does not.
type PGSeatInventory struct {
	db *pgxpool.Pool
}

func NewSeatInventory(db *pgxpool.Pool) *PGSeatInventory {
	return &PGSeatInventory{db: db}
}

func (r *PGSeatInventory) Claim(ctx context.Context, flightID, seatNo, bookingID string) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	res, err := tx.Exec(ctx, `UPDATE seats SET booking_id=$3 WHERE flight_id=$1 AND seat_no=$2 AND booking_id IS NULL`, flightID, seatNo, bookingID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return r.classifyClaimFailure(ctx, flightID, seatNo)
	}

	if _, err := tx.Exec(ctx, `UPDATE flights SET available_seats = available_seats - 1, updated_at = now() WHERE id=$1`, flightID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PGSeatInventory) classifyClaimFailure(ctx context.Context, flightID, seatNo string) error {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM seats WHERE flight_id=$1 AND seat_no=$2)`, flightID, seatNo).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrSeatUnavailable
	}
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM flights WHERE id=$1)`, flightID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return domain.ErrFlightNotFound
	}
	return domain.ErrSeatNotFound
}

func (r *PGSeatInventory) Release(ctx context.Context, flightID, seatNo string) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	res, err := tx.Exec(ctx, `UPDATE seats SET booking_id=NULL WHERE flight_id=$1 AND seat_no=$2 AND booking_id IS NOT NULL`, flightID, seatNo)
	if err != nil {
		return err
	}
	// Releasing an already-free seat is a no-op, and must not bump the
	// available counter a second time.
	if res.RowsAffected() == 0 {
		return nil
	}

	if _, err := tx.Exec(ctx, `UPDATE flights SET available_seats = available_seats + 1, updated_at = now() WHERE id=$1`, flightID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// ReleaseAbandoned frees every seat whose holding booking has one of the
// given statuses and restores the per-flight counters, all in one
// transaction. It repairs seats stranded by a release that failed or was
// lost to a crash after the booking's status write.
func (r *PGSeatInventory) ReleaseAbandoned(ctx context.Context, statuses []domain.BookingStatus) (int64, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `UPDATE seats SET booking_id=NULL
		WHERE booking_id IN (SELECT id FROM bookings WHERE status = ANY($1))
		RETURNING flight_id`, statusStrings(statuses))
	if err != nil {
		return 0, err
	}
	perFlight := make(map[string]int64)
	var freed int64
	for rows.Next() {
		var flightID string
		if err := rows.Scan(&flightID); err != nil {
			rows.Close()
			return 0, err
		}
		perFlight[flightID]++
		freed++
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}
	if freed == 0 {
		return 0, nil
	}

	for flightID, n := range perFlight {
		if _, err := tx.Exec(ctx, `UPDATE flights SET available_seats = available_seats + $1, updated_at = now() WHERE id=$2`, n, flightID); err != nil {
			return 0, err
		}
	}
	return freed, tx.Commit(ctx)
}

func (r *PGSeatInventory) Availability(ctx context.Context, flightID string) (*inventory.Availability, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT total_seats FROM flights WHERE id=$1`, flightID).Scan(&total); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFlightNotFound
		}
		return nil, err
	}

	rows, err := r.db.Query(ctx, `SELECT seat_no, booking_id IS NOT NULL FROM seats WHERE flight_id=$1 ORDER BY row_no, seat_no`, flightID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	avail := &inventory.Availability{
		FlightID:       flightID,
		TotalSeats:     total,
		AvailableSeats: make([]string, 0, total),
		BookedSeats:    make([]string, 0),
	}
	for rows.Next() {
		var seat string
		var held bool
		if err := rows.Scan(&seat, &held); err != nil {
			return nil, err
		}
		if held {
			avail.BookedSeats = append(avail.BookedSeats, seat)
		} else {
			avail.AvailableSeats = append(avail.AvailableSeats, seat)
		}
	}
	avail.AvailableCount = len(avail.AvailableSeats)
	return avail, rows.Err()
}

var _ inventory.SeatInventory = (*PGSeatInventory)(nil)
var _ inventory.AbandonedReleaser = (*PGSeatInventory)(nil)
