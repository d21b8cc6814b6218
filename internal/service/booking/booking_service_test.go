package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/flightbook/internal/domain"
	"github.com/Domenick1991/flightbook/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockPersister struct {
	mock.Mock
}

func (m *MockPersister) SaveAll(ctx context.Context, snap store.Snapshot) error {
	args := m.Called(ctx, snap)
	return args.Error(0)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func date(s string) time.Time {
	d, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return d
}

func seededStore(t *testing.T) *store.Store {
	t.Helper()
	s := store.New()
	assert.NoError(t, s.AddFlight(domain.Flight{ID: 1, FlightNumber: "FL100",
		DepartureDate: date("2025-06-01"), Capacity: 2, BasePrice: 100, Status: domain.StatusActive}))
	assert.NoError(t, s.AddFlight(domain.Flight{ID: 2, FlightNumber: "FL200",
		DepartureDate: date("2025-06-02"), Capacity: 2, BasePrice: 100, Status: domain.StatusActive}))
	assert.NoError(t, s.AddCustomer(domain.Customer{ID: 1, Name: "alice",
		Phone: "0123", Email: "alice@example.com", Status: domain.StatusActive}))
	return s
}

func newService(st *store.Store, persister Persister, producer Producer) *BookingService {
	return NewBookingService(st, persister, producer, "booking_events",
		zap.NewNop().Sugar(), WithNotificationsTopic("booking_notifications"))
}

func TestBookingService_CreateBooking_Success(t *testing.T) {
	st := seededStore(t)
	mockPersister := &MockPersister{}
	mockProducer := &MockProducer{}
	service := newService(st, mockPersister, mockProducer)

	ctx := context.Background()
	mockPersister.On("SaveAll", ctx, mock.AnythingOfType("store.Snapshot")).Return(nil).Once()
	mockProducer.On("Publish", ctx, "booking_events", "1", mock.Anything).Return(nil).Once()
	mockProducer.On("Publish", ctx, "booking_notifications", "1", mock.Anything).Return(nil).Once()

	booking, err := service.CreateBooking(ctx, CreateBookingInput{
		CustomerID:  1,
		FlightID:    1,
		BookingDate: date("2025-05-01"),
	})

	assert.NoError(t, err)
	assert.NotNil(t, booking)
	assert.Equal(t, domain.StatusActive, booking.Status)
	assert.Equal(t, 1, booking.CustomerID)
	assert.Equal(t, 1, booking.FlightID)

	mockPersister.AssertExpectations(t)
	mockProducer.AssertExpectations(t)
}

func TestBookingService_CreateBooking_ValidationAndStoreErrors(t *testing.T) {
	st := seededStore(t)
	mockPersister := &MockPersister{}
	mockProducer := &MockProducer{}
	service := newService(st, mockPersister, mockProducer)

	ctx := context.Background()

	testCases := []struct {
		name        string
		input       CreateBookingInput
		expectedErr error
	}{
		{
			name:        "missing booking date",
			input:       CreateBookingInput{CustomerID: 1, FlightID: 1},
			expectedErr: domain.ErrInvalidInput,
		},
		{
			name:        "unknown customer",
			input:       CreateBookingInput{CustomerID: 42, FlightID: 1, BookingDate: date("2025-05-01")},
			expectedErr: domain.ErrNotFound,
		},
		{
			name:        "unknown flight",
			input:       CreateBookingInput{CustomerID: 1, FlightID: 42, BookingDate: date("2025-05-01")},
			expectedErr: domain.ErrNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			booking, err := service.CreateBooking(ctx, tc.input)
			assert.ErrorIs(t, err, tc.expectedErr)
			assert.Nil(t, booking)
		})
	}

	// nothing persisted, nothing published
	mockPersister.AssertNotCalled(t, "SaveAll")
	mockProducer.AssertNotCalled(t, "Publish")
}

func TestBookingService_CreateBooking_PersistFailureSurfaces(t *testing.T) {
	st := seededStore(t)
	mockPersister := &MockPersister{}
	mockProducer := &MockProducer{}
	service := newService(st, mockPersister, mockProducer)

	ctx := context.Background()
	diskErr := errors.New("disk full")
	mockPersister.On("SaveAll", ctx, mock.Anything).Return(diskErr).Once()

	booking, err := service.CreateBooking(ctx, CreateBookingInput{
		CustomerID: 1, FlightID: 1, BookingDate: date("2025-05-01"),
	})

	assert.ErrorIs(t, err, diskErr)
	assert.Nil(t, booking)
	// the in-memory mutation stays applied; only durability failed
	bookings, _ := service.List(ctx)
	assert.Len(t, bookings, 1)

	mockPersister.AssertExpectations(t)
	mockProducer.AssertNotCalled(t, "Publish")
}

func TestBookingService_CreateBooking_PublishFailureDoesNotFailOperation(t *testing.T) {
	st := seededStore(t)
	mockPersister := &MockPersister{}
	mockProducer := &MockProducer{}
	service := newService(st, mockPersister, mockProducer)

	ctx := context.Background()
	mockPersister.On("SaveAll", ctx, mock.Anything).Return(nil).Once()
	mockProducer.On("Publish", ctx, "booking_events", "1", mock.Anything).
		Return(errors.New("broker down")).Once()

	booking, err := service.CreateBooking(ctx, CreateBookingInput{
		CustomerID: 1, FlightID: 1, BookingDate: date("2025-05-01"),
	})

	assert.NoError(t, err)
	assert.NotNil(t, booking)
	mockProducer.AssertExpectations(t)
}

func TestBookingService_CancelBooking(t *testing.T) {
	st := seededStore(t)
	mockPersister := &MockPersister{}
	mockProducer := &MockProducer{}
	service := newService(st, mockPersister, mockProducer)

	ctx := context.Background()
	mockPersister.On("SaveAll", ctx, mock.Anything).Return(nil).Times(2)
	mockProducer.On("Publish", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := service.CreateBooking(ctx, CreateBookingInput{
		CustomerID: 1, FlightID: 1, BookingDate: date("2025-05-01"),
	})
	assert.NoError(t, err)

	cancelled, err := service.CancelBooking(ctx, 1, 1)
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusRetired, cancelled.Status)

	bookings, _ := service.List(ctx)
	assert.Empty(t, bookings)

	_, err = service.CancelBooking(ctx, 1, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBookingService_Rebook(t *testing.T) {
	st := seededStore(t)
	mockPersister := &MockPersister{}
	mockProducer := &MockProducer{}
	service := newService(st, mockPersister, mockProducer)

	ctx := context.Background()
	mockPersister.On("SaveAll", ctx, mock.Anything).Return(nil).Times(2)
	mockProducer.On("Publish", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	created, err := service.CreateBooking(ctx, CreateBookingInput{
		CustomerID: 1, FlightID: 1, BookingDate: date("2025-05-01"),
	})
	assert.NoError(t, err)

	rebooked, err := service.Rebook(ctx, 1, 2)
	assert.NoError(t, err)
	assert.Equal(t, created.ID, rebooked.ID)
	assert.Equal(t, 2, rebooked.FlightID)

	mockPersister.AssertExpectations(t)
}

func TestBookingService_ListForCustomer(t *testing.T) {
	st := seededStore(t)
	mockPersister := &MockPersister{}
	mockProducer := &MockProducer{}
	service := newService(st, mockPersister, mockProducer)

	ctx := context.Background()

	_, err := service.ListForCustomer(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	bookings, err := service.ListForCustomer(ctx, 1)
	assert.NoError(t, err)
	assert.Empty(t, bookings)
}
