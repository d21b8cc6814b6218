package store

import (
	"fmt"
	"sort"
	"sync"

	"github.com/Domenick1991/flightbook/internal/domain"
)

// Store is the single source of truth for flights, customers and
// bookings. Every invariant check and every cross-entity read lives
// here; callers never mutate entities directly. A single mutex guards
// all three collections, one operation at a time.
type Store struct {
	mu            sync.Mutex
	flights       map[int]*domain.Flight
	customers     map[int]*domain.Customer
	bookings      []*domain.Booking
	nextBookingID int
}

func New() *Store {
	return &Store{
		flights:       make(map[int]*domain.Flight),
		customers:     make(map[int]*domain.Customer),
		nextBookingID: 1,
	}
}

// AddFlight inserts a flight under its caller-assigned id. It fails when
// the id is taken or when an active flight with the same flight number
// departs on the same date.
func (s *Store) AddFlight(f domain.Flight) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.flights[f.ID]; ok {
		return fmt.Errorf("flight %d: %w", f.ID, domain.ErrDuplicateIdentity)
	}
	for _, existing := range s.flights {
		if existing.Status == domain.StatusActive &&
			existing.FlightNumber == f.FlightNumber &&
			existing.DepartureDate.Equal(f.DepartureDate) {
			return fmt.Errorf("flight %s on %s: %w",
				f.FlightNumber, f.DepartureDate.Format("2006-01-02"), domain.ErrConflictingSchedule)
		}
	}
	s.flights[f.ID] = &f
	return nil
}

// RemoveFlight deletes the flight record outright. It is rejected while
// any booking still references the flight: the booking file stores bare
// flight ids, and a dangling reference would make the data set
// unloadable. Cancel the bookings first, or use DeactivateFlight.
func (s *Store) RemoveFlight(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.flights[id]; !ok {
		return fmt.Errorf("flight %d: %w", id, domain.ErrNotFound)
	}
	for _, b := range s.bookings {
		if b.FlightID == id {
			return fmt.Errorf("flight %d still has bookings: %w", id, domain.ErrFlightInUse)
		}
	}
	delete(s.flights, id)
	return nil
}

// DeactivateFlight removes every booking referencing the flight, then
// retires it. Validation happens before any mutation, so the cascade and
// the status flip are visible together or not at all.
func (s *Store) DeactivateFlight(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.flights[id]
	if !ok {
		return fmt.Errorf("flight %d: %w", id, domain.ErrNotFound)
	}

	kept := s.bookings[:0]
	for _, b := range s.bookings {
		if b.FlightID != id {
			kept = append(kept, b)
		}
	}
	s.bookings = kept
	f.Status = domain.StatusRetired
	return nil
}

// AddCustomer inserts a customer under its caller-supplied id. Name,
// phone and email must be present.
func (s *Store) AddCustomer(c domain.Customer) error {
	if c.Name == "" || c.Phone == "" || c.Email == "" {
		return fmt.Errorf("customer requires name, phone and email: %w", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customers[c.ID]; ok {
		return fmt.Errorf("customer %d: %w", c.ID, domain.ErrDuplicateIdentity)
	}
	s.customers[c.ID] = &c
	return nil
}

// DeactivateCustomer soft-deletes a customer. The record and its booking
// history stay in place. Retiring an already retired customer is a no-op
// and is reported as changed=false.
func (s *Store) DeactivateCustomer(id int) (changed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.customers[id]
	if !ok {
		return false, fmt.Errorf("customer %d: %w", id, domain.ErrNotFound)
	}
	if c.Status == domain.StatusRetired {
		return false, nil
	}
	c.Status = domain.StatusRetired
	return true, nil
}

// Flights returns value copies of all flights ordered by id.
func (s *Store) Flights() []domain.Flight {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flightsLocked()
}

// Customers returns value copies of all customers ordered by id.
func (s *Store) Customers() []domain.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.customersLocked()
}

// Bookings returns value copies of all bookings in insertion order.
func (s *Store) Bookings() []domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bookingsLocked()
}

// The locked copy helpers assume the caller holds s.mu; Snapshot uses
// them to capture all three collections in one critical section.

func (s *Store) flightsLocked() []domain.Flight {
	out := make([]domain.Flight, 0, len(s.flights))
	for _, f := range s.flights {
		out = append(out, *f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) customersLocked() []domain.Customer {
	out := make([]domain.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) bookingsLocked() []domain.Booking {
	out := make([]domain.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		out = append(out, *b)
	}
	return out
}

func (s *Store) FlightByID(id int) (*domain.Flight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.flights[id]
	if !ok {
		return nil, fmt.Errorf("flight %d: %w", id, domain.ErrNotFound)
	}
	out := *f
	return &out, nil
}

func (s *Store) CustomerByID(id int) (*domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.customers[id]
	if !ok {
		return nil, fmt.Errorf("customer %d: %w", id, domain.ErrNotFound)
	}
	out := *c
	return &out, nil
}

// NextFlightID returns max(existing ids)+1, starting at 1 for an empty
// store. Flight ids are allocated by the caller of AddFlight; the store
// only rejects duplicates.
func (s *Store) NextFlightID() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	max := 0
	for id := range s.flights {
		if id > max {
			max = id
		}
	}
	return max + 1
}
