package booking

// SelectionState describes how far along a selection is relative to
// its target quantity.
type SelectionState int

const (
	// StateIdle means no seats have been picked yet.
	StateIdle SelectionState = iota
	// StateSelecting means some seats are picked but fewer than the
	// target quantity.
	StateSelecting
	// StateReady means exactly the target number of seats is picked
	// and the order can move on to payment.
	StateReady
)

func (s SelectionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSelecting:
		return "selecting"
	case StateReady:
		return "ready"
	}
	return "unknown"
}

// Selection tracks an in-progress seat pick for one showing.  It is
// created fresh each time a user enters seat selection and lives only
// in memory; abandoning the flow discards it.  The invariant it
// maintains: the picked set never contains an occupied seat and never
// grows past the target quantity.
type Selection struct {
	movieID  string
	showtime string
	target   int
	occupied map[Seat]struct{}
	picked   []Seat
}

// NewSelection builds a selection for the given showing.  target is
// the number of tickets requested; occupied is the set of seats
// already committed by other bookings for the same showing.
func NewSelection(movieID, showtime string, target int, occupied []Seat) *Selection {
	occ := make(map[Seat]struct{}, len(occupied))
	for _, s := range occupied {
		occ[s] = struct{}{}
	}
	return &Selection{
		movieID:  movieID,
		showtime: showtime,
		target:   target,
		occupied: occ,
	}
}

// Toggle flips seat membership in the picked set.  Seats outside the
// grid and occupied seats are never added.  Picking past the target is
// a no-op; the caller must deselect a seat first.  Toggle reports
// whether the call changed the selection.
func (sel *Selection) Toggle(seat Seat) bool {
	if !seat.Valid() {
		return false
	}
	if _, occ := sel.occupied[seat]; occ {
		return false
	}
	for i, s := range sel.picked {
		if s == seat {
			sel.picked = append(sel.picked[:i], sel.picked[i+1:]...)
			return true
		}
	}
	if len(sel.picked) >= sel.target {
		return false
	}
	sel.picked = append(sel.picked, seat)
	return true
}

// Picked returns the currently selected seats in pick order.  The
// returned slice is a copy.
func (sel *Selection) Picked() []Seat {
	out := make([]Seat, len(sel.picked))
	copy(out, sel.picked)
	return out
}

// State derives the current selection state from the pick count.
func (sel *Selection) State() SelectionState {
	switch n := len(sel.picked); {
	case n == 0:
		return StateIdle
	case n < sel.target:
		return StateSelecting
	default:
		return StateReady
	}
}

// CanProceed reports whether the selection is complete: exactly target
// seats picked and the showing fully identified.
func (sel *Selection) CanProceed() bool {
	return sel.State() == StateReady && sel.movieID != "" && sel.showtime != ""
}
