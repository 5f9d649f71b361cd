package model

import "time"

// Booking records a committed ticket purchase for one showing.  The
// movie title and poster are denormalized onto the row so that a
// user's history stays renderable even after the movie is removed from
// the catalog; MovieID is a weak reference.
//
// Seat rows live in the booking_seats table, which carries a UNIQUE
// key on (movie_id, showtime, seat_label).  That key is what makes
// seats disjoint across bookings of the same showing.
//
// Bookings are created exactly once and never edited; they disappear
// only through explicit deletion.
type Booking struct {
	ID            uint64    // bookings.id
	UserID        uint64    // bookings.user_id
	MovieID       string    // bookings.movie_id (weak reference)
	Title         string    // bookings.title (denormalized)
	Poster        string    // bookings.poster (denormalized, may be empty)
	Showtime      string    // bookings.showtime, e.g. "12:00"
	Quantity      int       // bookings.quantity == len(Seats)
	Seats         []string  // booking_seats.seat_label in pick order
	TotalPrice    int64     // bookings.total_price, quantity x unit price at creation
	CustomerName  string    // bookings.customer_name
	PaymentStatus string    // bookings.payment_status (pending | paid)
	PaymentMethod string    // bookings.payment_method (cash | qris | card)
	CreatedAt     time.Time // bookings.created_at, immutable
}
