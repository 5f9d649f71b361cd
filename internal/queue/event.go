// Package queue defines message payloads exchanged over the message
// broker plus the publisher and the background consumer for the
// booking.confirmed queue.
package queue

// BookingConfirmedEvent is published when a booking is successfully
// committed and paid.  It carries enough information for downstream
// consumers to log or notify without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID    uint64   `json:"booking_id"`
	UserID       uint64   `json:"user_id"`
	MovieID      string   `json:"movie_id"`
	MovieTitle   string   `json:"movie_title"`
	Showtime     string   `json:"showtime"`
	Seats        []string `json:"seats"`
	TotalPrice   int64    `json:"total_price"`
	CustomerName string   `json:"customer_name"`
	PaidAt       string   `json:"paid_at"`
}
