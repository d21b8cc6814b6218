package storage

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Domenick1991/flightbook/internal/domain"
	"github.com/Domenick1991/flightbook/internal/store"
)

const (
	flightsFile   = "flights.txt"
	customersFile = "customers.txt"
	bookingsFile  = "bookings.txt"
)

// MalformedRecordError reports an unparseable or unresolvable record in
// one of the data files, including the 1-based line it was found on.
type MalformedRecordError struct {
	File string
	Line int
	Err  error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("%s line %d: %v", e.File, e.Line, e.Err)
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }

// FileGateway is the only component that touches storage. It translates
// between the store's in-memory state and one line-oriented text file per
// collection under the data directory.
type FileGateway struct {
	dir string
}

func NewFileGateway(dir string) *FileGateway {
	return &FileGateway{dir: dir}
}

// LoadAll reads all three files into a snapshot. Flights and customers
// load before bookings so that booking references resolve; the first
// malformed or unresolvable record aborts the whole load. Missing files
// count as empty collections.
func (g *FileGateway) LoadAll(ctx context.Context) (store.Snapshot, error) {
	var snap store.Snapshot

	flightIDs := make(map[int]bool)
	customerIDs := make(map[int]bool)

	err := g.readLines(ctx, flightsFile, func(line string, n int) error {
		f, err := parseFlight(line)
		if err != nil {
			return &MalformedRecordError{File: flightsFile, Line: n, Err: err}
		}
		snap.Flights = append(snap.Flights, f)
		flightIDs[f.ID] = true
		return nil
	})
	if err != nil {
		return store.Snapshot{}, err
	}

	err = g.readLines(ctx, customersFile, func(line string, n int) error {
		c, err := parseCustomer(line)
		if err != nil {
			return &MalformedRecordError{File: customersFile, Line: n, Err: err}
		}
		snap.Customers = append(snap.Customers, c)
		customerIDs[c.ID] = true
		return nil
	})
	if err != nil {
		return store.Snapshot{}, err
	}

	err = g.readLines(ctx, bookingsFile, func(line string, n int) error {
		b, err := parseBooking(line)
		if err != nil {
			return &MalformedRecordError{File: bookingsFile, Line: n, Err: err}
		}
		if !customerIDs[b.CustomerID] {
			return &MalformedRecordError{File: bookingsFile, Line: n,
				Err: fmt.Errorf("customer %d: %w", b.CustomerID, domain.ErrNotFound)}
		}
		if !flightIDs[b.FlightID] {
			return &MalformedRecordError{File: bookingsFile, Line: n,
				Err: fmt.Errorf("flight %d: %w", b.FlightID, domain.ErrNotFound)}
		}
		snap.Bookings = append(snap.Bookings, b)
		return nil
	})
	if err != nil {
		return store.Snapshot{}, err
	}

	return snap, nil
}

// SaveAll rewrites all three files from the snapshot. A full rewrite, not
// an append; line order across save/reload is not guaranteed.
func (g *FileGateway) SaveAll(ctx context.Context, snap store.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	lines := make([]string, 0, len(snap.Flights))
	for _, f := range snap.Flights {
		lines = append(lines, formatFlight(f))
	}
	if err := g.writeLines(flightsFile, lines); err != nil {
		return err
	}

	lines = lines[:0]
	for _, c := range snap.Customers {
		lines = append(lines, formatCustomer(c))
	}
	if err := g.writeLines(customersFile, lines); err != nil {
		return err
	}

	lines = lines[:0]
	for _, b := range snap.Bookings {
		lines = append(lines, formatBooking(b))
	}
	return g.writeLines(bookingsFile, lines)
}

func (g *FileGateway) readLines(ctx context.Context, name string, fn func(line string, n int) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Open(filepath.Join(g.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	n := 0
	for scanner.Scan() {
		n++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := fn(line, n); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	return nil
}

func (g *FileGateway) writeLines(name string, lines []string) error {
	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	if err := os.WriteFile(filepath.Join(g.dir, name), []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
