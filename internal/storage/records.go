package storage

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/flightbook/internal/domain"
)

// Field delimiter of the record format. Values are not escaped; a field
// containing the delimiter corrupts the record. Known fragility, kept.
const separator = "::"

const dateLayout = "2006-01-02"

// Flight record: id::flightNumber::origin::destination::departureDate::capacity::price::cancellationFee::status
func parseFlight(line string) (domain.Flight, error) {
	fields := strings.Split(line, separator)
	if len(fields) < 9 {
		return domain.Flight{}, fmt.Errorf("incomplete flight record: %d fields", len(fields))
	}

	var f domain.Flight
	var err error
	if f.ID, err = strconv.Atoi(fields[0]); err != nil {
		return domain.Flight{}, fmt.Errorf("flight id: %w", err)
	}
	f.FlightNumber = fields[1]
	f.Origin = fields[2]
	f.Destination = fields[3]
	if f.DepartureDate, err = time.ParseInLocation(dateLayout, fields[4], time.UTC); err != nil {
		return domain.Flight{}, fmt.Errorf("departure date: %w", err)
	}
	if f.Capacity, err = strconv.Atoi(fields[5]); err != nil {
		return domain.Flight{}, fmt.Errorf("capacity: %w", err)
	}
	if f.BasePrice, err = strconv.ParseFloat(fields[6], 64); err != nil {
		return domain.Flight{}, fmt.Errorf("price: %w", err)
	}
	if f.CancellationFee, err = strconv.ParseFloat(fields[7], 64); err != nil {
		return domain.Flight{}, fmt.Errorf("cancellation fee: %w", err)
	}
	if f.Status, err = parseStatus(fields[8]); err != nil {
		return domain.Flight{}, err
	}
	return f, nil
}

func formatFlight(f domain.Flight) string {
	return strings.Join([]string{
		strconv.Itoa(f.ID),
		f.FlightNumber,
		f.Origin,
		f.Destination,
		f.DepartureDate.Format(dateLayout),
		strconv.Itoa(f.Capacity),
		strconv.FormatFloat(f.BasePrice, 'f', -1, 64),
		strconv.FormatFloat(f.CancellationFee, 'f', -1, 64),
		formatStatus(f.Status),
	}, separator)
}

// Customer record: id::name::phone::email::status
func parseCustomer(line string) (domain.Customer, error) {
	fields := strings.Split(line, separator)
	if len(fields) < 5 {
		return domain.Customer{}, fmt.Errorf("incomplete customer record: %d fields", len(fields))
	}

	var c domain.Customer
	var err error
	if c.ID, err = strconv.Atoi(fields[0]); err != nil {
		return domain.Customer{}, fmt.Errorf("customer id: %w", err)
	}
	c.Name = fields[1]
	c.Phone = fields[2]
	c.Email = fields[3]
	if c.Status, err = parseStatus(fields[4]); err != nil {
		return domain.Customer{}, err
	}
	return c, nil
}

func formatCustomer(c domain.Customer) string {
	return strings.Join([]string{
		strconv.Itoa(c.ID),
		c.Name,
		c.Phone,
		c.Email,
		formatStatus(c.Status),
	}, separator)
}

// Booking record: customerId::flightId::bookingDate::status
// Booking ids are not persisted; the store reassigns them on restore.
func parseBooking(line string) (domain.Booking, error) {
	fields := strings.Split(line, separator)
	if len(fields) < 4 {
		return domain.Booking{}, fmt.Errorf("incomplete booking record: %d fields", len(fields))
	}

	var b domain.Booking
	var err error
	if b.CustomerID, err = strconv.Atoi(fields[0]); err != nil {
		return domain.Booking{}, fmt.Errorf("booking customer id: %w", err)
	}
	if b.FlightID, err = strconv.Atoi(fields[1]); err != nil {
		return domain.Booking{}, fmt.Errorf("booking flight id: %w", err)
	}
	if b.BookingDate, err = time.ParseInLocation(dateLayout, fields[2], time.UTC); err != nil {
		return domain.Booking{}, fmt.Errorf("booking date: %w", err)
	}
	if b.Status, err = parseStatus(fields[3]); err != nil {
		return domain.Booking{}, err
	}
	return b, nil
}

func formatBooking(b domain.Booking) string {
	return strings.Join([]string{
		strconv.Itoa(b.CustomerID),
		strconv.Itoa(b.FlightID),
		b.BookingDate.Format(dateLayout),
		formatStatus(b.Status),
	}, separator)
}

// The files encode lifecycle state as 1 (active) / 0 (retired).
func parseStatus(s string) (domain.Status, error) {
	switch s {
	case "1":
		return domain.StatusActive, nil
	case "0":
		return domain.StatusRetired, nil
	default:
		return "", fmt.Errorf("unknown status %q", s)
	}
}

func formatStatus(st domain.Status) string {
	if st == domain.StatusActive {
		return "1"
	}
	return "0"
}
