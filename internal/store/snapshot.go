package store

import "github.com/Domenick1991/flightbook/internal/domain"

// Snapshot is a value copy of the store's collections, used to cross the
// persistence boundary in both directions.
type Snapshot struct {
	Flights   []domain.Flight
	Customers []domain.Customer
	Bookings  []domain.Booking
}

// Snapshot captures all three collections inside one critical section,
// so a concurrent mutation can never tear the copy: every booking in the
// snapshot references a flight and customer from the same instant.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Flights:   s.flightsLocked(),
		Customers: s.customersLocked(),
		Bookings:  s.bookingsLocked(),
	}
}

// Restore replaces all state with the snapshot's. Booking ids are
// reassigned sequentially in snapshot order (the booking record format
// does not persist them) and the counter resumes past the highest
// reassigned id. Within a process lifetime ids are never reused; across
// a restart the dense renumbering can hand out an id that a since
// cancelled booking once held.
func (s *Store) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.flights = make(map[int]*domain.Flight, len(snap.Flights))
	for _, f := range snap.Flights {
		f := f
		s.flights[f.ID] = &f
	}
	s.customers = make(map[int]*domain.Customer, len(snap.Customers))
	for _, c := range snap.Customers {
		c := c
		s.customers[c.ID] = &c
	}

	s.bookings = make([]*domain.Booking, 0, len(snap.Bookings))
	nextID := 1
	for _, b := range snap.Bookings {
		b := b
		if b.ID == 0 {
			b.ID = nextID
		}
		if b.ID >= nextID {
			nextID = b.ID + 1
		}
		s.bookings = append(s.bookings, &b)
	}
	s.nextBookingID = nextID
}
