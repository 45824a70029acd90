package flights

import (
	"context"
	"time"

	"github.com/Abhijith12371/InfosysProject/internal/domain"
	"github.com/Abhijith12371/InfosysProject/internal/inventory"
	"github.com/Abhijith12371/InfosysProject/internal/pricing"
	"github.com/Abhijith12371/InfosysProject/internal/repository"
)

const fareHistoryLimit = 50

type FlightUseCase interface {
	Search(ctx context.Context, filter repository.SearchFilter) ([]FlightView, error)
	GetDetails(ctx context.Context, id string) (*FlightDetails, error)
	PricingBreakdown(ctx context.Context, id string) (*pricing.Breakdown, error)
	Availability(ctx context.Context, id string) (*inventory.Availability, error)
	FareHistory(ctx context.Context, id string) ([]domain.FareHistory, error)
}

type FlightCache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
}

// FlightView is a flight priced for the requesting instant. The demand
// factor is read fresh from the flight row on every quote, never cached
// inside the engine.
type FlightView struct {
	domain.Flight
	DynamicPriceCents int64 `json:"dynamic_price_cents"`
	DurationMinutes   int   `json:"duration_minutes"`
}

type FlightDetails struct {
	FlightView
	AvailableSeatList []string `json:"available_seat_list"`
	BookedSeatList    []string `json:"booked_seat_list"`
}

type FlightService struct {
	repo  repository.FlightRepository
	seats inventory.SeatInventory
	cache FlightCache
	now   func() time.Time
}

type FlightServiceOption func(*FlightService)

func WithClock(now func() time.Time) FlightServiceOption {
	return func(s *FlightService) {
		s.now = now
	}
}

func NewFlightService(repo repository.FlightRepository, seats inventory.SeatInventory, cache FlightCache, opts ...FlightServiceOption) *FlightService {
	s := &FlightService{repo: repo, seats: seats, cache: cache, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search lists bookable flights matching the filter, each priced at call
// time. The unfiltered listing goes through the cache; filtered queries
// always hit the repository.
func (s *FlightService) Search(ctx context.Context, filter repository.SearchFilter) ([]FlightView, error) {
	now := s.now()
	unfiltered := filter == (repository.SearchFilter{})

	if unfiltered && s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return s.priced(cached, now), nil
		}
	}

	flights, err := s.repo.Search(ctx, filter, now)
	if err != nil {
		return nil, err
	}
	if unfiltered && s.cache != nil {
		_ = s.cache.SetFlights(ctx, flights)
	}
	return s.priced(flights, now), nil
}

func (s *FlightService) GetDetails(ctx context.Context, id string) (*FlightDetails, error) {
	flight, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	avail, err := s.seats.Availability(ctx, id)
	if err != nil {
		return nil, err
	}
	return &FlightDetails{
		FlightView:        s.view(*flight, s.now()),
		AvailableSeatList: avail.AvailableSeats,
		BookedSeatList:    avail.BookedSeats,
	}, nil
}

func (s *FlightService) PricingBreakdown(ctx context.Context, id string) (*pricing.Breakdown, error) {
	flight, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	b := pricing.Quote(flight.BasePriceCents, flight.AvailableSeats, flight.TotalSeats, flight.DepartureTime, s.now(), flight.DemandFactor)
	return &b, nil
}

func (s *FlightService) Availability(ctx context.Context, id string) (*inventory.Availability, error) {
	return s.seats.Availability(ctx, id)
}

func (s *FlightService) FareHistory(ctx context.Context, id string) ([]domain.FareHistory, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.FareHistory(ctx, id, fareHistoryLimit)
}

func (s *FlightService) priced(flights []domain.Flight, now time.Time) []FlightView {
	views := make([]FlightView, 0, len(flights))
	for _, f := range flights {
		views = append(views, s.view(f, now))
	}
	return views
}

func (s *FlightService) view(f domain.Flight, now time.Time) FlightView {
	quote := pricing.Quote(f.BasePriceCents, f.AvailableSeats, f.TotalSeats, f.DepartureTime, now, f.DemandFactor)
	return FlightView{
		Flight:            f,
		DynamicPriceCents: quote.FinalCents,
		DurationMinutes:   int(f.ArrivalTime.Sub(f.DepartureTime).Minutes()),
	}
}

var _ FlightUseCase = (*FlightService)(nil)
