package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seat(t *testing.T, label string) Seat {
	t.Helper()
	s, err := ParseSeat(label)
	require.NoError(t, err)
	return s
}

func TestSelectionStateTransitions(t *testing.T) {
	sel := NewSelection("mv-001", "12:00", 2, nil)
	assert.Equal(t, StateIdle, sel.State())
	assert.False(t, sel.CanProceed())

	assert.True(t, sel.Toggle(seat(t, "C3")))
	assert.Equal(t, StateSelecting, sel.State())
	assert.False(t, sel.CanProceed())

	assert.True(t, sel.Toggle(seat(t, "C4")))
	assert.Equal(t, StateReady, sel.State())
	assert.True(t, sel.CanProceed())

	// Deselecting moves back toward idle.
	assert.True(t, sel.Toggle(seat(t, "C4")))
	assert.Equal(t, StateSelecting, sel.State())
	assert.True(t, sel.Toggle(seat(t, "C3")))
	assert.Equal(t, StateIdle, sel.State())
}

func TestSelectionNeverExceedsTarget(t *testing.T) {
	sel := NewSelection("mv-001", "12:00", 2, nil)
	require.True(t, sel.Toggle(seat(t, "A1")))
	require.True(t, sel.Toggle(seat(t, "A2")))

	// Capped: a third pick is a no-op until something is deselected.
	assert.False(t, sel.Toggle(seat(t, "A3")))
	assert.Len(t, sel.Picked(), 2)

	require.True(t, sel.Toggle(seat(t, "A2")))
	assert.True(t, sel.Toggle(seat(t, "A3")))
	assert.Equal(t, []string{"A1", "A3"}, Labels(sel.Picked()))
}

func TestSelectionRejectsOccupiedSeats(t *testing.T) {
	occupied := []Seat{seat(t, "B5"), seat(t, "B6")}
	sel := NewSelection("mv-001", "15:00", 3, occupied)

	assert.False(t, sel.Toggle(seat(t, "B5")))
	assert.False(t, sel.Toggle(seat(t, "B6")))
	assert.Empty(t, sel.Picked())

	assert.True(t, sel.Toggle(seat(t, "B7")))
	for _, picked := range sel.Picked() {
		for _, occ := range occupied {
			assert.NotEqual(t, occ, picked)
		}
	}
}

func TestSelectionRejectsSeatsOutsideGrid(t *testing.T) {
	sel := NewSelection("mv-001", "12:00", 2, nil)

	assert.False(t, sel.Toggle(SeatAt('Z', 99)))
	assert.False(t, sel.Toggle(SeatAt('A', 0)))
	assert.False(t, sel.Toggle(Seat{}))
	assert.Empty(t, sel.Picked())
	assert.Equal(t, StateIdle, sel.State())
}

func TestSelectionCanProceedRequiresShowing(t *testing.T) {
	sel := NewSelection("", "", 1, nil)
	require.True(t, sel.Toggle(seat(t, "D4")))
	assert.Equal(t, StateReady, sel.State())
	// Ready but the showing is not identified.
	assert.False(t, sel.CanProceed())
}
