package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	d, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return d
}

func TestPriceFor_Windows(t *testing.T) {
	flight := &Flight{
		ID:            1,
		FlightNumber:  "FL100",
		BasePrice:     100,
		DepartureDate: date("2025-06-10"),
		Status:        StatusActive,
	}

	testCases := []struct {
		name     string
		refDate  string
		expected float64
	}{
		{name: "five days out pays 20 percent", refDate: "2025-06-05", expected: 120.0},
		{name: "same day pays 20 percent", refDate: "2025-06-10", expected: 120.0},
		{name: "exactly a week out pays 20 percent", refDate: "2025-06-03", expected: 120.0},
		{name: "eight days out pays 10 percent", refDate: "2025-06-02", expected: 110.0},
		{name: "exactly thirty days out pays 10 percent", refDate: "2025-05-11", expected: 110.0},
		{name: "thirty one days out pays base", refDate: "2025-05-10", expected: 100.0},
		{name: "far out pays base", refDate: "2025-01-01", expected: 100.0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			price, err := PriceFor(flight, date(tc.refDate))
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, price)
		})
	}
}

func TestPriceFor_ReferenceDateAfterDeparture(t *testing.T) {
	flight := &Flight{BasePrice: 100, DepartureDate: date("2025-06-10")}

	price, err := PriceFor(flight, date("2025-06-11"))
	assert.ErrorIs(t, err, ErrInvalidReferenceDate)
	assert.Zero(t, price)
}

func TestPriceFor_IsPure(t *testing.T) {
	flight := &Flight{BasePrice: 250, DepartureDate: date("2025-06-10")}
	before := *flight

	first, err := PriceFor(flight, date("2025-06-08"))
	assert.NoError(t, err)
	second, err := PriceFor(flight, date("2025-06-08"))
	assert.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, before, *flight)
}

func TestPriceFor_TimeOfDayIgnored(t *testing.T) {
	flight := &Flight{BasePrice: 100, DepartureDate: date("2025-06-10")}

	ref := time.Date(2025, 6, 2, 23, 30, 0, 0, time.UTC)
	price, err := PriceFor(flight, ref)
	assert.NoError(t, err)
	assert.Equal(t, 110.0, price)
}
