package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/flightbook/internal/domain"
	"github.com/Domenick1991/flightbook/internal/kafka"
	"github.com/Domenick1991/flightbook/internal/metrics"
	"github.com/Domenick1991/flightbook/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	CancelBooking(ctx context.Context, customerID, flightID int) (*domain.Booking, error)
	Rebook(ctx context.Context, customerID, newFlightID int) (*domain.Booking, error)
	List(ctx context.Context) ([]domain.Booking, error)
	ListForCustomer(ctx context.Context, customerID int) ([]domain.Booking, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type Persister interface {
	SaveAll(ctx context.Context, snap store.Snapshot) error
}

type CreateBookingInput struct {
	CustomerID  int       `json:"customer_id"`
	FlightID    int       `json:"flight_id"`
	BookingDate time.Time `json:"booking_date"`
}

type BookingService struct {
	store              *store.Store
	persister          Persister
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	log                *zap.SugaredLogger
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func NewBookingService(
	st *store.Store,
	persister Persister,
	producer Producer,
	bookingTopic string,
	log *zap.SugaredLogger,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		store:        st,
		persister:    persister,
		producer:     producer,
		bookingTopic: bookingTopic,
		log:          log,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if input.BookingDate.IsZero() {
		return nil, fmt.Errorf("booking date is required: %w", domain.ErrInvalidInput)
	}

	booking, err := s.store.AddBooking(input.CustomerID, input.FlightID, input.BookingDate)
	metrics.ObserveStoreOp("add_booking", err)
	if err != nil {
		return nil, err
	}
	if err := s.persist(ctx); err != nil {
		return nil, err
	}

	s.publish(ctx, "booking_created", booking)
	s.log.Infow("booking created",
		"booking_id", booking.ID, "customer_id", booking.CustomerID, "flight_id", booking.FlightID)
	return booking, nil
}

func (s *BookingService) CancelBooking(ctx context.Context, customerID, flightID int) (*domain.Booking, error) {
	booking, err := s.store.CancelBooking(customerID, flightID)
	metrics.ObserveStoreOp("cancel_booking", err)
	if err != nil {
		return nil, err
	}
	if err := s.persist(ctx); err != nil {
		return nil, err
	}

	s.publish(ctx, "booking_cancelled", booking)
	s.log.Infow("booking cancelled",
		"booking_id", booking.ID, "customer_id", customerID, "flight_id", flightID)
	return booking, nil
}

func (s *BookingService) Rebook(ctx context.Context, customerID, newFlightID int) (*domain.Booking, error) {
	booking, err := s.store.Rebook(customerID, newFlightID)
	metrics.ObserveStoreOp("rebook", err)
	if err != nil {
		return nil, err
	}
	if err := s.persist(ctx); err != nil {
		return nil, err
	}

	s.publish(ctx, "booking_rebooked", booking)
	s.log.Infow("booking rebooked",
		"booking_id", booking.ID, "customer_id", customerID, "new_flight_id", newFlightID)
	return booking, nil
}

func (s *BookingService) List(ctx context.Context) ([]domain.Booking, error) {
	return s.store.Bookings(), nil
}

func (s *BookingService) ListForCustomer(ctx context.Context, customerID int) ([]domain.Booking, error) {
	if _, err := s.store.CustomerByID(customerID); err != nil {
		return nil, err
	}
	return s.store.BookingsForCustomer(customerID), nil
}

func (s *BookingService) persist(ctx context.Context) error {
	err := s.persister.SaveAll(ctx, s.store.Snapshot())
	metrics.ObserveFlush(err)
	if err != nil {
		return fmt.Errorf("persist bookings: %w", err)
	}
	return nil
}

// publish emits the lifecycle event on the booking topic and mirrors it
// to the notifications topic. Publish failures are logged, never turned
// into operation failures.
func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}

	email := ""
	if c, err := s.store.CustomerByID(booking.CustomerID); err == nil {
		email = c.Email
	}
	event := kafka.BookingEvent{
		EventID:       uuid.NewString(),
		Type:          eventType,
		BookingID:     booking.ID,
		CustomerID:    booking.CustomerID,
		FlightID:      booking.FlightID,
		CustomerEmail: email,
		BookingDate:   booking.BookingDate,
		OccurredAt:    time.Now(),
	}

	key := fmt.Sprintf("%d", booking.ID)
	if err := s.producer.Publish(ctx, s.bookingTopic, key, event); err != nil {
		s.log.Warnw("publish booking event", "type", eventType, "booking_id", booking.ID, "error", err)
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, key, event); err != nil {
			s.log.Warnw("publish notification", "type", eventType, "booking_id", booking.ID, "error", err)
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
