package domain

type Customer struct {
	ID     int
	Name   string
	Phone  string
	Email  string
	Status Status
}
