package customers

import (
	"context"
	"fmt"

	"github.com/Domenick1991/flightbook/internal/domain"
	"github.com/Domenick1991/flightbook/internal/metrics"
	"github.com/Domenick1991/flightbook/internal/store"
	"go.uber.org/zap"
)

type CustomerUseCase interface {
	List(ctx context.Context) ([]domain.Customer, error)
	GetByID(ctx context.Context, id int) (*CustomerDetails, error)
	Add(ctx context.Context, input AddCustomerInput) (*domain.Customer, error)
	Deactivate(ctx context.Context, id int) (changed bool, err error)
}

type Persister interface {
	SaveAll(ctx context.Context, snap store.Snapshot) error
}

// AddCustomerInput carries a caller-supplied id; the store only checks
// uniqueness.
type AddCustomerInput struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// CustomerDetails is the single-customer view with the booking history
// derived from the store's booking table.
type CustomerDetails struct {
	domain.Customer
	Bookings []domain.Booking
}

type CustomerService struct {
	store     *store.Store
	persister Persister
	log       *zap.SugaredLogger
}

func NewCustomerService(st *store.Store, persister Persister, log *zap.SugaredLogger) *CustomerService {
	return &CustomerService{store: st, persister: persister, log: log}
}

func (s *CustomerService) List(ctx context.Context) ([]domain.Customer, error) {
	return s.store.Customers(), nil
}

func (s *CustomerService) GetByID(ctx context.Context, id int) (*CustomerDetails, error) {
	c, err := s.store.CustomerByID(id)
	if err != nil {
		return nil, err
	}
	return &CustomerDetails{
		Customer: *c,
		Bookings: s.store.BookingsForCustomer(id),
	}, nil
}

func (s *CustomerService) Add(ctx context.Context, input AddCustomerInput) (*domain.Customer, error) {
	if input.ID <= 0 {
		return nil, fmt.Errorf("customer id must be positive: %w", domain.ErrInvalidInput)
	}

	customer := domain.Customer{
		ID:     input.ID,
		Name:   input.Name,
		Phone:  input.Phone,
		Email:  input.Email,
		Status: domain.StatusActive,
	}

	err := s.store.AddCustomer(customer)
	metrics.ObserveStoreOp("add_customer", err)
	if err != nil {
		return nil, err
	}
	if err := s.persist(ctx); err != nil {
		return nil, err
	}

	s.log.Infow("customer added", "customer_id", customer.ID)
	return &customer, nil
}

// Deactivate soft-deletes a customer. changed=false means the customer
// was already retired; the call is idempotent but the caller is told.
func (s *CustomerService) Deactivate(ctx context.Context, id int) (bool, error) {
	changed, err := s.store.DeactivateCustomer(id)
	metrics.ObserveStoreOp("deactivate_customer", err)
	if err != nil {
		return false, err
	}
	if !changed {
		return false, nil
	}
	if err := s.persist(ctx); err != nil {
		return true, err
	}

	s.log.Infow("customer deactivated", "customer_id", id)
	return true, nil
}

func (s *CustomerService) persist(ctx context.Context) error {
	err := s.persister.SaveAll(ctx, s.store.Snapshot())
	metrics.ObserveFlush(err)
	if err != nil {
		return fmt.Errorf("persist customers: %w", err)
	}
	return nil
}

var _ CustomerUseCase = (*CustomerService)(nil)
