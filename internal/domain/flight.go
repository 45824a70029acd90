package domain

import "time"

type Flight struct {
	ID             string
	FlightNumber   string
	Airline        string
	Source         string
	Destination    string
	DepartureTime  time.Time
	ArrivalTime    time.Time
	BasePriceCents int64
	TotalSeats     int
	AvailableSeats int
	DemandFactor   float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FareHistory is one recorded price point for a flight, written whenever
// the demand simulator changes the demand factor.
type FareHistory struct {
	ID             int64
	FlightID       string
	PriceCents     int64
	DemandFactor   float64
	AvailableSeats int
	RecordedAt     time.Time
}
