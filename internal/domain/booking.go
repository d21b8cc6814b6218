package domain

import "time"

// Booking associates one customer with one flight. It references both by
// id; the store owns the canonical booking collection and all views over
// it (a flight's passengers, a customer's booking history) are derived.
type Booking struct {
	ID          int
	CustomerID  int
	FlightID    int
	BookingDate time.Time // date the booking was made, not the departure date
	Status      Status
}
