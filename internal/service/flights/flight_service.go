package flights

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/flightbook/internal/domain"
	"github.com/Domenick1991/flightbook/internal/metrics"
	"github.com/Domenick1991/flightbook/internal/store"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int) (*FlightDetails, error)
	Add(ctx context.Context, input AddFlightInput) (*domain.Flight, error)
	Remove(ctx context.Context, id int) error
	Deactivate(ctx context.Context, id int) error
	Quote(ctx context.Context, id int, referenceDate time.Time) (float64, error)
}

// Cache fronts the flight list query.
type Cache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

// Persister flushes the store's state to the data files. Every mutating
// operation writes through; a flush failure fails the operation even
// though the in-memory mutation stays applied.
type Persister interface {
	SaveAll(ctx context.Context, snap store.Snapshot) error
}

type AddFlightInput struct {
	FlightNumber    string    `json:"flight_number"`
	Origin          string    `json:"origin"`
	Destination     string    `json:"destination"`
	DepartureDate   time.Time `json:"departure_date"`
	Capacity        int       `json:"capacity"`
	BasePrice       float64   `json:"base_price"`
	CancellationFee float64   `json:"cancellation_fee"`
}

// FlightDetails is the single-flight view: the record plus the seat
// availability and passenger list derived from the booking table.
type FlightDetails struct {
	domain.Flight
	AvailableSeats int
	Passengers     []domain.Customer
}

type FlightService struct {
	store     *store.Store
	persister Persister
	cache     Cache
	quotes    *gocache.Cache
	log       *zap.SugaredLogger
}

func NewFlightService(st *store.Store, persister Persister, cache Cache, quotesTTL time.Duration, log *zap.SugaredLogger) *FlightService {
	return &FlightService{
		store:     st,
		persister: persister,
		cache:     cache,
		quotes:    gocache.New(quotesTTL, 2*quotesTTL),
		log:       log,
	}
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights := s.store.Flights()
	if s.cache != nil {
		if err := s.cache.SetFlights(ctx, flights); err != nil {
			s.log.Warnw("set flights cache", "error", err)
		}
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int) (*FlightDetails, error) {
	f, err := s.store.FlightByID(id)
	if err != nil {
		return nil, err
	}
	seats, err := s.store.AvailableSeats(id)
	if err != nil {
		return nil, err
	}
	return &FlightDetails{
		Flight:         *f,
		AvailableSeats: seats,
		Passengers:     s.store.PassengersOf(id),
	}, nil
}

// Add allocates the next flight id and inserts the flight as active.
func (s *FlightService) Add(ctx context.Context, input AddFlightInput) (*domain.Flight, error) {
	if input.FlightNumber == "" {
		return nil, fmt.Errorf("flight number is required: %w", domain.ErrInvalidInput)
	}
	if input.Capacity < 0 {
		return nil, fmt.Errorf("capacity must not be negative: %w", domain.ErrInvalidInput)
	}
	if input.BasePrice < 0 || input.CancellationFee < 0 {
		return nil, fmt.Errorf("price must not be negative: %w", domain.ErrInvalidInput)
	}

	flight := domain.Flight{
		ID:              s.store.NextFlightID(),
		FlightNumber:    input.FlightNumber,
		Origin:          input.Origin,
		Destination:     input.Destination,
		DepartureDate:   input.DepartureDate,
		Capacity:        input.Capacity,
		BasePrice:       input.BasePrice,
		CancellationFee: input.CancellationFee,
		Status:          domain.StatusActive,
	}

	err := s.store.AddFlight(flight)
	metrics.ObserveStoreOp("add_flight", err)
	if err != nil {
		return nil, err
	}
	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	s.log.Infow("flight added", "flight_id", flight.ID, "flight_number", flight.FlightNumber)
	return &flight, nil
}

func (s *FlightService) Remove(ctx context.Context, id int) error {
	err := s.store.RemoveFlight(id)
	metrics.ObserveStoreOp("remove_flight", err)
	if err != nil {
		return err
	}
	if err := s.persist(ctx); err != nil {
		return err
	}
	s.invalidate(ctx)

	s.log.Infow("flight removed", "flight_id", id)
	return nil
}

// Deactivate hard-removes every booking on the flight, then retires it.
func (s *FlightService) Deactivate(ctx context.Context, id int) error {
	err := s.store.DeactivateFlight(id)
	metrics.ObserveStoreOp("deactivate_flight", err)
	if err != nil {
		return err
	}
	if err := s.persist(ctx); err != nil {
		return err
	}
	s.invalidate(ctx)

	s.log.Infow("flight deactivated", "flight_id", id)
	return nil
}

// Quote prices a flight as seen on referenceDate. Quotes are memoized
// briefly; the pricing itself is a pure function of the flight and date.
func (s *FlightService) Quote(ctx context.Context, id int, referenceDate time.Time) (float64, error) {
	key := fmt.Sprintf("%d:%s", id, referenceDate.Format("2006-01-02"))
	if cached, ok := s.quotes.Get(key); ok {
		metrics.CacheHitsTotal.WithLabelValues("quotes").Inc()
		return cached.(float64), nil
	}
	metrics.CacheMissesTotal.WithLabelValues("quotes").Inc()

	f, err := s.store.FlightByID(id)
	if err != nil {
		return 0, err
	}
	price, err := domain.PriceFor(f, referenceDate)
	if err != nil {
		return 0, err
	}
	s.quotes.SetDefault(key, price)
	return price, nil
}

func (s *FlightService) persist(ctx context.Context) error {
	err := s.persister.SaveAll(ctx, s.store.Snapshot())
	metrics.ObserveFlush(err)
	if err != nil {
		return fmt.Errorf("persist flights: %w", err)
	}
	return nil
}

// invalidate drops every cached read derived from flight state. The
// quote memo goes too: a removed or retired flight must not keep quoting
// until its TTL runs out.
func (s *FlightService) invalidate(ctx context.Context) {
	s.quotes.Flush()
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		s.log.Warnw("invalidate flights cache", "error", err)
	}
}

var _ FlightUseCase = (*FlightService)(nil)
