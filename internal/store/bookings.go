package store

import (
	"fmt"
	"time"

	"github.com/Domenick1991/flightbook/internal/domain"
)

// AddBooking books a customer onto a flight for the given booking date.
// Both ids must resolve, the flight must have a free seat, and no active
// booking may already exist for the same (customer, flight, date) triple.
func (s *Store) AddBooking(customerID, flightID int, bookingDate time.Time) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customers[customerID]; !ok {
		return nil, fmt.Errorf("customer %d: %w", customerID, domain.ErrNotFound)
	}
	f, ok := s.flights[flightID]
	if !ok {
		return nil, fmt.Errorf("flight %d: %w", flightID, domain.ErrNotFound)
	}
	if s.passengerCount(flightID) >= f.Capacity {
		return nil, fmt.Errorf("flight %s is full: %w", f.FlightNumber, domain.ErrCapacityExceeded)
	}
	for _, b := range s.bookings {
		if b.Status == domain.StatusActive &&
			b.CustomerID == customerID && b.FlightID == flightID &&
			b.BookingDate.Equal(bookingDate) {
			return nil, fmt.Errorf("customer %d already booked on flight %d for %s: %w",
				customerID, flightID, bookingDate.Format("2006-01-02"), domain.ErrDuplicateBooking)
		}
	}

	booking := &domain.Booking{
		ID:          s.nextBookingID,
		CustomerID:  customerID,
		FlightID:    flightID,
		BookingDate: bookingDate,
		Status:      domain.StatusActive,
	}
	s.nextBookingID++
	s.bookings = append(s.bookings, booking)

	out := *booking
	return &out, nil
}

// CancelBooking retires the first active booking matching the pair and
// removes it from the live collection. Cancelled bookings are not kept
// around as queryable history.
func (s *Store) CancelBooking(customerID, flightID int) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, b := range s.bookings {
		if b.Status == domain.StatusActive && b.CustomerID == customerID && b.FlightID == flightID {
			b.Status = domain.StatusRetired
			out := *b
			s.bookings = append(s.bookings[:i], s.bookings[i+1:]...)
			return &out, nil
		}
	}
	return nil, fmt.Errorf("no active booking for customer %d on flight %d: %w",
		customerID, flightID, domain.ErrNotFound)
}

// Rebook moves the customer's current active booking onto another flight,
// keeping the booking's identity. The destination flight must exist and
// have a free seat.
func (s *Store) Rebook(customerID, newFlightID int) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.flights[newFlightID]
	if !ok {
		return nil, fmt.Errorf("flight %d: %w", newFlightID, domain.ErrNotFound)
	}

	var booking *domain.Booking
	for _, b := range s.bookings {
		if b.Status == domain.StatusActive && b.CustomerID == customerID {
			booking = b
			break
		}
	}
	if booking == nil {
		return nil, fmt.Errorf("no active booking for customer %d: %w", customerID, domain.ErrNotFound)
	}
	if booking.FlightID != newFlightID && s.passengerCount(newFlightID) >= f.Capacity {
		return nil, fmt.Errorf("flight %s is full: %w", f.FlightNumber, domain.ErrCapacityExceeded)
	}

	booking.FlightID = newFlightID
	out := *booking
	return &out, nil
}

// BookingsForCustomer returns the customer's bookings in insertion order.
func (s *Store) BookingsForCustomer(customerID int) []domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.Booking
	for _, b := range s.bookings {
		if b.CustomerID == customerID {
			out = append(out, *b)
		}
	}
	return out
}

// PassengersOf returns the customers holding an active booking on the
// flight, derived from the canonical booking table.
func (s *Store) PassengersOf(flightID int) []domain.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.Customer
	for _, b := range s.bookings {
		if b.Status == domain.StatusActive && b.FlightID == flightID {
			if c, ok := s.customers[b.CustomerID]; ok {
				out = append(out, *c)
			}
		}
	}
	return out
}

// AvailableSeats reports capacity minus the active passenger count.
func (s *Store) AvailableSeats(flightID int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.flights[flightID]
	if !ok {
		return 0, fmt.Errorf("flight %d: %w", flightID, domain.ErrNotFound)
	}
	return f.Capacity - s.passengerCount(flightID), nil
}

// passengerCount counts active bookings on a flight. Callers hold s.mu.
func (s *Store) passengerCount(flightID int) int {
	n := 0
	for _, b := range s.bookings {
		if b.Status == domain.StatusActive && b.FlightID == flightID {
			n++
		}
	}
	return n
}
