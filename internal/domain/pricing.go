package domain

import "time"

// Late-booking price multipliers applied by departure proximity.
const (
	weekWindowDays  = 7
	monthWindowDays = 30
	weekMultiplier  = 1.20
	monthMultiplier = 1.10
)

// PriceFor computes the price of a flight as seen on referenceDate.
// Bookings within a week of departure pay 20% on top of the base price,
// within a month 10%. A reference date after departure is rejected with
// ErrInvalidReferenceDate. No rounding is applied; callers format for
// display.
func PriceFor(f *Flight, referenceDate time.Time) (float64, error) {
	d := daysBetween(referenceDate, f.DepartureDate)
	if d < 0 {
		return 0, ErrInvalidReferenceDate
	}
	switch {
	case d <= weekWindowDays:
		return f.BasePrice * weekMultiplier, nil
	case d <= monthWindowDays:
		return f.BasePrice * monthMultiplier, nil
	default:
		return f.BasePrice, nil
	}
}

// daysBetween counts whole calendar days from a to b, negative when b
// precedes a. Both arguments are treated as dates; time-of-day is dropped.
func daysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
