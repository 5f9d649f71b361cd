package booking

import (
	"errors"
	"fmt"
	"strings"
)

// PaymentMethod is the closed set of accepted payment tags.  Payment
// is simulated: the tag is stored on the booking, no gateway is
// called.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentQRIS PaymentMethod = "qris"
	PaymentCard PaymentMethod = "card"
)

// ParsePaymentMethod validates a payment method tag.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(strings.ToLower(strings.TrimSpace(s))); m {
	case PaymentCash, PaymentQRIS, PaymentCard:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, s)
}

// PaymentStatus tracks whether a booking has been paid.  Bookings
// created through the commit workflow are paid immediately.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// Validation failures for the commit workflow.  Each precondition in
// the workflow maps to one sentinel so handlers can translate them to
// distinct responses.
var (
	ErrMovieNotFound        = errors.New("movie not found")
	ErrInvalidShowtime      = errors.New("showtime not offered for movie")
	ErrSeatCountMismatch    = errors.New("seat count does not match quantity")
	ErrMissingCustomerName  = errors.New("customer name is required")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

// SeatConflictError reports seats that were already committed by
// another booking for the same showing.  It is produced when the
// database uniqueness constraint on (movie, showtime, seat) rejects a
// commit; the user must reselect the listed seats.
type SeatConflictError struct {
	Seats []Seat
}

func (e *SeatConflictError) Error() string {
	return fmt.Sprintf("seats already booked: %s", strings.Join(Labels(e.Seats), ", "))
}

// Order is a fully specified purchase request as submitted by the
// user: one showing, a set of seats and a payment tag.  Orders are
// validated by the commit workflow before anything is persisted.
type Order struct {
	MovieID       string
	Showtime      string
	Seats         []Seat
	Quantity      int
	CustomerName  string
	PaymentMethod PaymentMethod
}

// Validate checks the order's internal consistency: seat count equals
// quantity, seats are unique and in the grid, the customer name is
// non-empty and the payment method is known.  Showing-level checks
// (movie exists, showtime offered) belong to the commit workflow
// because they need the catalog.
func (o *Order) Validate() error {
	if len(o.Seats) != o.Quantity || o.Quantity <= 0 {
		return ErrSeatCountMismatch
	}
	seen := make(map[Seat]struct{}, len(o.Seats))
	for _, s := range o.Seats {
		if !s.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidSeat, s.String())
		}
		if _, dup := seen[s]; dup {
			return ErrSeatCountMismatch
		}
		seen[s] = struct{}{}
	}
	if strings.TrimSpace(o.CustomerName) == "" {
		return ErrMissingCustomerName
	}
	if _, err := ParsePaymentMethod(string(o.PaymentMethod)); err != nil {
		return err
	}
	return nil
}
