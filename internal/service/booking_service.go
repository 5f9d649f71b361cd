// Package service holds the booking commit workflow and the occupancy
// query.  It sits between the HTTP handlers and the repositories so
// the order rules can be exercised without a database.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/iliyamo/movie-ticket-booking/internal/booking"
	"github.com/iliyamo/movie-ticket-booking/internal/model"
	"github.com/iliyamo/movie-ticket-booking/internal/queue"
	"github.com/iliyamo/movie-ticket-booking/internal/repository"
)

// MovieStore is the slice of the catalog the workflow needs.
type MovieStore interface {
	GetByID(ctx context.Context, id string) (model.Movie, error)
}

// BookingStore is the slice of the booking repository the workflow and
// the occupancy query need.
type BookingStore interface {
	Create(ctx context.Context, b *model.Booking) error
	BookedSeats(ctx context.Context, movieID, showtime string) ([]string, error)
}

// EventPublisher emits booking.confirmed events after a successful
// commit.  Publishing is best-effort; failures never undo a booking.
type EventPublisher interface {
	PublishBookingConfirmed(ctx context.Context, ev queue.BookingConfirmedEvent) error
}

// BookingService validates orders and persists them as bookings.
type BookingService struct {
	Movies   MovieStore
	Bookings BookingStore
	Events   EventPublisher // may be nil when no broker is configured
}

func NewBookingService(movies MovieStore, bookings BookingStore, events EventPublisher) *BookingService {
	if movies == nil || bookings == nil {
		panic("nil store passed to NewBookingService")
	}
	return &BookingService{Movies: movies, Bookings: bookings, Events: events}
}

// Commit validates the order and persists it as a paid booking.
// Validation failures surface as the sentinels in the booking package;
// seat collisions surface as *booking.SeatConflictError carrying the
// seats that must be reselected.  There is deliberately no read-back
// occupancy check before the insert: the uniqueness key on
// (movie_id, showtime, seat_label) decides races between concurrent
// commits.
func (s *BookingService) Commit(ctx context.Context, userID uint64, order booking.Order) (model.Booking, error) {
	m, err := s.Movies.GetByID(ctx, order.MovieID)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return model.Booking{}, booking.ErrMovieNotFound
		}
		return model.Booking{}, fmt.Errorf("resolve movie: %w", err)
	}
	if strings.TrimSpace(order.Showtime) == "" || !m.HasShowtime(order.Showtime) {
		return model.Booking{}, booking.ErrInvalidShowtime
	}
	if err := order.Validate(); err != nil {
		return model.Booking{}, err
	}

	b := model.Booking{
		UserID:        userID,
		MovieID:       m.ID,
		Title:         m.Title,
		Poster:        m.Poster,
		Showtime:      order.Showtime,
		Quantity:      order.Quantity,
		Seats:         booking.Labels(order.Seats),
		TotalPrice:    booking.Total(m.Price, order.Quantity),
		CustomerName:  strings.TrimSpace(order.CustomerName),
		PaymentStatus: string(booking.PaymentPaid),
		PaymentMethod: string(order.PaymentMethod),
	}
	if err := s.Bookings.Create(ctx, &b); err != nil {
		if errors.Is(err, repository.ErrSeatTaken) {
			return model.Booking{}, &booking.SeatConflictError{Seats: s.conflictingSeats(ctx, order)}
		}
		return model.Booking{}, fmt.Errorf("persist booking: %w", err)
	}

	if s.Events != nil {
		ev := queue.BookingConfirmedEvent{
			BookingID:    b.ID,
			UserID:       b.UserID,
			MovieID:      b.MovieID,
			MovieTitle:   b.Title,
			Showtime:     b.Showtime,
			Seats:        b.Seats,
			TotalPrice:   b.TotalPrice,
			CustomerName: b.CustomerName,
			PaidAt:       b.CreatedAt.Format(time.RFC3339),
		}
		if err := s.Events.PublishBookingConfirmed(ctx, ev); err != nil {
			log.Printf("booking %d: publish confirmed event failed: %v", b.ID, err)
		}
	}
	return b, nil
}

// BookedSeats returns the seats already committed for a showing.  A
// repository failure degrades to an empty set so seat selection stays
// available; the conflict guarantee then rests solely on the commit
// uniqueness key.
func (s *BookingService) BookedSeats(ctx context.Context, movieID, showtime string) []booking.Seat {
	labels, err := s.Bookings.BookedSeats(ctx, movieID, showtime)
	if err != nil {
		log.Printf("occupancy query failed for movie=%s showtime=%s: %v", movieID, showtime, err)
		return []booking.Seat{}
	}
	seats := make([]booking.Seat, 0, len(labels))
	for _, l := range labels {
		seat, err := booking.ParseSeat(l)
		if err != nil {
			log.Printf("occupancy query: skipping malformed seat label %q: %v", l, err)
			continue
		}
		seats = append(seats, seat)
	}
	return seats
}

// conflictingSeats intersects the order's seats with the showing's
// committed seats to tell the user exactly what to reselect.  When the
// lookup itself fails, all ordered seats are reported.
func (s *BookingService) conflictingSeats(ctx context.Context, order booking.Order) []booking.Seat {
	taken, err := s.Bookings.BookedSeats(ctx, order.MovieID, order.Showtime)
	if err != nil {
		return order.Seats
	}
	set := make(map[string]struct{}, len(taken))
	for _, l := range taken {
		set[l] = struct{}{}
	}
	conflicts := make([]booking.Seat, 0, len(order.Seats))
	for _, seat := range order.Seats {
		if _, ok := set[seat.String()]; ok {
			conflicts = append(conflicts, seat)
		}
	}
	if len(conflicts) == 0 {
		return order.Seats
	}
	return conflicts
}
