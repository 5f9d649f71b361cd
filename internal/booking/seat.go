// Package booking contains the seat-selection and order domain for the
// ticket service.  The venue layout is fixed: every showing sells the
// same grid of 8 rows (A–H) by 10 columns, 80 seats in total.  Seats
// are identified by a short label such as "C7"; the textual form is
// the stable contract used in the database, the queue payloads and the
// HTTP API.
package booking

import (
	"errors"
	"fmt"
)

// Fixed venue dimensions.  There is no per-venue seat map; every
// (movie, showtime) pair shares the same grid.
const (
	FirstRow = 'A'
	LastRow  = 'H'
	Columns  = 10
)

// TotalSeats is the size of the full grid.
const TotalSeats = int(LastRow-FirstRow+1) * Columns

// ErrInvalidSeat is returned by ParseSeat for labels outside the grid.
var ErrInvalidSeat = errors.New("invalid seat label")

// Seat is a single position in the venue grid.  The zero value is not
// a valid seat; construct seats via ParseSeat or SeatAt.
type Seat struct {
	Row byte // 'A'..'H'
	Col int  // 1..10
}

// SeatAt builds a seat from its coordinates without validation.  It is
// used by SeatMap where the coordinates are known to be in range.
func SeatAt(row byte, col int) Seat { return Seat{Row: row, Col: col} }

// String renders the seat in its textual form, e.g. "A1" or "H10".
// Columns carry no leading zero, matching ^[A-H](10|[1-9])$.
func (s Seat) String() string { return fmt.Sprintf("%c%d", s.Row, s.Col) }

// Valid reports whether the seat lies inside the fixed grid.
func (s Seat) Valid() bool {
	return s.Row >= FirstRow && s.Row <= LastRow && s.Col >= 1 && s.Col <= Columns
}

// ParseSeat parses a textual seat label.  The label must be a single
// row letter A–H followed by a column number 1–10 with no leading
// zero.  Anything else yields ErrInvalidSeat.
func ParseSeat(label string) (Seat, error) {
	if len(label) < 2 || len(label) > 3 {
		return Seat{}, fmt.Errorf("%w: %q", ErrInvalidSeat, label)
	}
	row := label[0]
	if row < FirstRow || row > LastRow {
		return Seat{}, fmt.Errorf("%w: %q", ErrInvalidSeat, label)
	}
	col := 0
	for i := 1; i < len(label); i++ {
		d := label[i]
		if d < '0' || d > '9' {
			return Seat{}, fmt.Errorf("%w: %q", ErrInvalidSeat, label)
		}
		col = col*10 + int(d-'0')
	}
	// "A01" and "A0" are rejected: no leading zeros, columns start at 1.
	if label[1] == '0' || col < 1 || col > Columns {
		return Seat{}, fmt.Errorf("%w: %q", ErrInvalidSeat, label)
	}
	return Seat{Row: row, Col: col}, nil
}

// ParseSeats parses a list of labels and rejects duplicates.  The
// returned slice preserves the input order.
func ParseSeats(labels []string) ([]Seat, error) {
	seats := make([]Seat, 0, len(labels))
	seen := make(map[Seat]struct{}, len(labels))
	for _, l := range labels {
		s, err := ParseSeat(l)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[s]; dup {
			return nil, fmt.Errorf("%w: duplicate seat %q", ErrInvalidSeat, l)
		}
		seen[s] = struct{}{}
		seats = append(seats, s)
	}
	return seats, nil
}

// SeatMap enumerates the full venue grid in row-major order: A1..A10,
// B1..B10, …, H1..H10.  The result is always the same 80 seats.
func SeatMap() []Seat {
	out := make([]Seat, 0, TotalSeats)
	for row := byte(FirstRow); row <= LastRow; row++ {
		for col := 1; col <= Columns; col++ {
			out = append(out, SeatAt(row, col))
		}
	}
	return out
}

// Labels converts a slice of seats to their textual labels.
func Labels(seats []Seat) []string {
	out := make([]string, len(seats))
	for i, s := range seats {
		out[i] = s.String()
	}
	return out
}
