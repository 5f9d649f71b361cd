package booking

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeatMapIsStableAndComplete(t *testing.T) {
	first := SeatMap()
	require.Len(t, first, TotalSeats)

	seen := make(map[Seat]struct{}, len(first))
	for _, s := range first {
		_, dup := seen[s]
		require.False(t, dup, "duplicate seat %s", s)
		seen[s] = struct{}{}
	}

	// Deterministic: a second enumeration is identical element-wise.
	assert.Equal(t, first, SeatMap())

	// Row-major: A1 first, A10 before B1, H10 last.
	assert.Equal(t, "A1", first[0].String())
	assert.Equal(t, "A10", first[9].String())
	assert.Equal(t, "B1", first[10].String())
	assert.Equal(t, "H10", first[len(first)-1].String())
}

func TestSeatLabelRoundTrip(t *testing.T) {
	format := regexp.MustCompile(`^[A-H](10|[1-9])$`)
	for _, s := range SeatMap() {
		label := s.String()
		assert.Regexp(t, format, label)

		parsed, err := ParseSeat(label)
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
}

func TestParseSeatRejectsBadLabels(t *testing.T) {
	for _, label := range []string{
		"", "A", "A0", "A11", "A01", "I1", "a1", "1A", "AA1", "A1 ", "H100",
	} {
		_, err := ParseSeat(label)
		assert.ErrorIs(t, err, ErrInvalidSeat, "label %q", label)
	}
}

func TestParseSeatsRejectsDuplicates(t *testing.T) {
	seats, err := ParseSeats([]string{"A1", "B2", "H10"})
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "B2", "H10"}, Labels(seats))

	_, err = ParseSeats([]string{"A1", "A1"})
	assert.ErrorIs(t, err, ErrInvalidSeat)
}
