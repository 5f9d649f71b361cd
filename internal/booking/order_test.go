package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOrder(t *testing.T) Order {
	t.Helper()
	seats, err := ParseSeats([]string{"A1", "A2"})
	require.NoError(t, err)
	return Order{
		MovieID:       "mv-001",
		Showtime:      "12:00",
		Seats:         seats,
		Quantity:      2,
		CustomerName:  "Budi",
		PaymentMethod: PaymentQRIS,
	}
}

func TestOrderValidate(t *testing.T) {
	o := validOrder(t)
	assert.NoError(t, o.Validate())

	o = validOrder(t)
	o.Quantity = 3
	assert.ErrorIs(t, o.Validate(), ErrSeatCountMismatch)

	o = validOrder(t)
	o.Seats = nil
	o.Quantity = 0
	assert.ErrorIs(t, o.Validate(), ErrSeatCountMismatch)

	o = validOrder(t)
	o.Seats = []Seat{o.Seats[0], o.Seats[0]}
	assert.ErrorIs(t, o.Validate(), ErrSeatCountMismatch)

	o = validOrder(t)
	o.CustomerName = "   "
	assert.ErrorIs(t, o.Validate(), ErrMissingCustomerName)

	o = validOrder(t)
	o.PaymentMethod = "bitcoin"
	assert.ErrorIs(t, o.Validate(), ErrInvalidPaymentMethod)
}

func TestParsePaymentMethod(t *testing.T) {
	for in, want := range map[string]PaymentMethod{
		"cash": PaymentCash,
		"QRIS": PaymentQRIS,
		" card ": PaymentCard,
	} {
		got, err := ParsePaymentMethod(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParsePaymentMethod("transfer")
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)
}

func TestSeatConflictErrorMessage(t *testing.T) {
	seats, err := ParseSeats([]string{"C7", "C8"})
	require.NoError(t, err)
	e := &SeatConflictError{Seats: seats}
	assert.Equal(t, "seats already booked: C7, C8", e.Error())
}
