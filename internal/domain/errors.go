package domain

import "errors"

// Failure kinds shared across the store, services and HTTP layer. Callers
// wrap them with context and match with errors.Is.
var (
	ErrNotFound             = errors.New("not found")
	ErrDuplicateIdentity    = errors.New("identifier already in use")
	ErrConflictingSchedule  = errors.New("conflicting schedule")
	ErrCapacityExceeded     = errors.New("capacity exceeded")
	ErrFlightInUse          = errors.New("flight still has bookings")
	ErrDuplicateBooking     = errors.New("duplicate booking")
	ErrInvalidReferenceDate = errors.New("reference date after departure")
	ErrInvalidInput         = errors.New("invalid input")
)
