package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/Abhijith12371/InfosysProject/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SearchFilter narrows a flight search. Zero values mean "no filter".
type SearchFilter struct {
	Source        string
	Destination   string
	DepartureDate time.Time
	MinPriceCents int64
	MaxPriceCents int64
}

type FlightRepository interface {
	Search(ctx context.Context, filter SearchFilter, now time.Time) ([]domain.Flight, error)
	GetByID(ctx context.Context, id string) (*domain.Flight, error)
	ListUpcoming(ctx context.Context, now time.Time) ([]domain.Flight, error)
	UpdateDemandFactor(ctx context.Context, id string, factor float64) error
	RecordFareHistory(ctx context.Context, h domain.FareHistory) error
	FareHistory(ctx context.Context, flightID string, limit int) ([]domain.FareHistory, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `id, flight_number, airline, source, destination, departure_time, arrival_time, base_price_cents, total_seats, available_seats, demand_factor, created_at, updated_at`

func scanFlight(row pgx.Row) (*domain.Flight, error) {
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.FlightNumber, &f.Airline, &f.Source, &f.Destination, &f.DepartureTime, &f.ArrivalTime, &f.BasePriceCents, &f.TotalSeats, &f.AvailableSeats, &f.DemandFactor, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *PGFlightRepository) Search(ctx context.Context, filter SearchFilter, now time.Time) ([]domain.Flight, error) {
	query := `SELECT ` + flightColumns + ` FROM flights WHERE departure_time > $1 AND available_seats > 0`
	args := []interface{}{now}

	if filter.Source != "" {
		args = append(args, "%"+filter.Source+"%")
		query += ` AND source ILIKE $` + strconv.Itoa(len(args))
	}
	if filter.Destination != "" {
		args = append(args, "%"+filter.Destination+"%")
		query += ` AND destination ILIKE $` + strconv.Itoa(len(args))
	}
	if !filter.DepartureDate.IsZero() {
		day := filter.DepartureDate.Truncate(24 * time.Hour)
		args = append(args, day)
		query += ` AND departure_time >= $` + strconv.Itoa(len(args))
		args = append(args, day.Add(24*time.Hour))
		query += ` AND departure_time < $` + strconv.Itoa(len(args))
	}
	if filter.MinPriceCents > 0 {
		args = append(args, filter.MinPriceCents)
		query += ` AND base_price_cents >= $` + strconv.Itoa(len(args))
	}
	if filter.MaxPriceCents > 0 {
		args = append(args, filter.MaxPriceCents)
		query += ` AND base_price_cents <= $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY departure_time`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	f, err := scanFlight(r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrFlightNotFound
	}
	return f, err
}

func (r *PGFlightRepository) ListUpcoming(ctx context.Context, now time.Time) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights WHERE departure_time > $1 ORDER BY departure_time`, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) UpdateDemandFactor(ctx context.Context, id string, factor float64) error {
	cmd, err := r.db.Exec(ctx, `UPDATE flights SET demand_factor=$1, updated_at=now() WHERE id=$2`, factor, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrFlightNotFound
	}
	return nil
}

func (r *PGFlightRepository) RecordFareHistory(ctx context.Context, h domain.FareHistory) error {
	_, err := r.db.Exec(ctx, `INSERT INTO fare_history (flight_id, price_cents, demand_factor, available_seats, recorded_at)
		VALUES ($1, $2, $3, $4, $5)`, h.FlightID, h.PriceCents, h.DemandFactor, h.AvailableSeats, h.RecordedAt)
	return err
}

func (r *PGFlightRepository) FareHistory(ctx context.Context, flightID string, limit int) ([]domain.FareHistory, error) {
	rows, err := r.db.Query(ctx, `SELECT id, flight_id, price_cents, demand_factor, available_seats, recorded_at FROM fare_history WHERE flight_id=$1 ORDER BY recorded_at DESC LIMIT $2`, flightID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]domain.FareHistory, 0)
	for rows.Next() {
		var h domain.FareHistory
		if err := rows.Scan(&h.ID, &h.FlightID, &h.PriceCents, &h.DemandFactor, &h.AvailableSeats, &h.RecordedAt); err != nil {
			return nil, err
		}
		history = append(history, h)
	}
	return history, rows.Err()
}

var _ FlightRepository = (*PGFlightRepository)(nil)
