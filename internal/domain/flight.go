package domain

import "time"

type Status string

const (
	StatusActive  Status = "ACTIVE"
	StatusRetired Status = "RETIRED"
)

type Flight struct {
	ID              int
	FlightNumber    string
	Origin          string
	Destination     string
	DepartureDate   time.Time // calendar date, UTC midnight
	Capacity        int
	BasePrice       float64
	CancellationFee float64
	Status          Status
}
