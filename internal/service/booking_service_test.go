package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-ticket-booking/internal/booking"
	"github.com/iliyamo/movie-ticket-booking/internal/model"
	"github.com/iliyamo/movie-ticket-booking/internal/queue"
	"github.com/iliyamo/movie-ticket-booking/internal/repository"
)

// fakeCatalog serves movies from a map.
type fakeCatalog struct {
	movies map[string]model.Movie
}

func (f *fakeCatalog) GetByID(_ context.Context, id string) (model.Movie, error) {
	if m, ok := f.movies[id]; ok {
		return m, nil
	}
	return model.Movie{}, repository.ErrMovieNotFound
}

// fakeBookings is an in-memory BookingStore that mirrors the database
// uniqueness key on (movie_id, showtime, seat_label).
type fakeBookings struct {
	nextID      uint64
	createCalls int
	failCreate  error
	failQuery   error
	bookings    []model.Booking
	taken       map[string]struct{}
}

func newFakeBookings() *fakeBookings {
	return &fakeBookings{taken: make(map[string]struct{})}
}

func seatKey(movieID, showtime, seat string) string {
	return fmt.Sprintf("%s|%s|%s", movieID, showtime, seat)
}

func (f *fakeBookings) Create(_ context.Context, b *model.Booking) error {
	f.createCalls++
	if f.failCreate != nil {
		return f.failCreate
	}
	for _, s := range b.Seats {
		if _, dup := f.taken[seatKey(b.MovieID, b.Showtime, s)]; dup {
			return repository.ErrSeatTaken
		}
	}
	for _, s := range b.Seats {
		f.taken[seatKey(b.MovieID, b.Showtime, s)] = struct{}{}
	}
	f.nextID++
	b.ID = f.nextID
	b.CreatedAt = time.Now().UTC()
	f.bookings = append(f.bookings, *b)
	return nil
}

func (f *fakeBookings) BookedSeats(_ context.Context, movieID, showtime string) ([]string, error) {
	if f.failQuery != nil {
		return nil, f.failQuery
	}
	labels := make([]string, 0)
	for _, b := range f.bookings {
		if b.MovieID == movieID && b.Showtime == showtime {
			labels = append(labels, b.Seats...)
		}
	}
	return labels, nil
}

// recordingPublisher captures published events.
type recordingPublisher struct {
	events []queue.BookingConfirmedEvent
	fail   error
}

func (p *recordingPublisher) PublishBookingConfirmed(_ context.Context, ev queue.BookingConfirmedEvent) error {
	p.events = append(p.events, ev)
	return p.fail
}

func testCatalog() *fakeCatalog {
	return &fakeCatalog{movies: map[string]model.Movie{
		"mv-001": {
			ID:        "mv-001",
			Title:     "Cars",
			Poster:    "https://img.example/cars.jpg",
			Price:     40000,
			Status:    model.MovieNowPlaying,
			Showtimes: []string{"12:00", "15:00", "18:30", "21:00"},
		},
	}}
}

func testOrder(t *testing.T, labels ...string) booking.Order {
	t.Helper()
	seats, err := booking.ParseSeats(labels)
	require.NoError(t, err)
	return booking.Order{
		MovieID:       "mv-001",
		Showtime:      "12:00",
		Seats:         seats,
		Quantity:      len(seats),
		CustomerName:  "Budi",
		PaymentMethod: booking.PaymentQRIS,
	}
}

func TestCommitPersistsPaidBooking(t *testing.T) {
	store := newFakeBookings()
	pub := &recordingPublisher{}
	svc := NewBookingService(testCatalog(), store, pub)

	b, err := svc.Commit(context.Background(), 7, testOrder(t, "A1", "A2"))
	require.NoError(t, err)

	assert.Equal(t, int64(80000), b.TotalPrice) // 2 x 40000
	assert.Equal(t, string(booking.PaymentPaid), b.PaymentStatus)
	assert.Equal(t, string(booking.PaymentQRIS), b.PaymentMethod)
	assert.Equal(t, "Cars", b.Title)
	assert.Equal(t, uint64(7), b.UserID)
	assert.Equal(t, []string{"A1", "A2"}, b.Seats)
	assert.NotZero(t, b.ID)
	assert.False(t, b.CreatedAt.IsZero())
	assert.Equal(t, 1, store.createCalls)

	require.Len(t, pub.events, 1)
	assert.Equal(t, b.ID, pub.events[0].BookingID)
	assert.Equal(t, []string{"A1", "A2"}, pub.events[0].Seats)
	assert.Equal(t, int64(80000), pub.events[0].TotalPrice)
}

func TestCommitValidation(t *testing.T) {
	store := newFakeBookings()
	svc := NewBookingService(testCatalog(), store, nil)
	ctx := context.Background()

	o := testOrder(t, "A1", "A2")
	o.MovieID = "mv-404"
	_, err := svc.Commit(ctx, 1, o)
	assert.ErrorIs(t, err, booking.ErrMovieNotFound)

	o = testOrder(t, "A1", "A2")
	o.Showtime = "13:37"
	_, err = svc.Commit(ctx, 1, o)
	assert.ErrorIs(t, err, booking.ErrInvalidShowtime)

	o = testOrder(t, "A1", "A2")
	o.Quantity = 3
	_, err = svc.Commit(ctx, 1, o)
	assert.ErrorIs(t, err, booking.ErrSeatCountMismatch)

	o = testOrder(t, "A1", "A2")
	o.CustomerName = ""
	_, err = svc.Commit(ctx, 1, o)
	assert.ErrorIs(t, err, booking.ErrMissingCustomerName)

	// No validation failure may reach the repository.
	assert.Zero(t, store.createCalls)
}

func TestCommitSurfacesSeatConflict(t *testing.T) {
	store := newFakeBookings()
	svc := NewBookingService(testCatalog(), store, nil)
	ctx := context.Background()

	_, err := svc.Commit(ctx, 1, testOrder(t, "C7", "C8"))
	require.NoError(t, err)

	// Second customer wants C8 plus a free seat.
	_, err = svc.Commit(ctx, 2, testOrder(t, "C8", "C9"))
	var conflict *booking.SeatConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []string{"C8"}, booking.Labels(conflict.Seats))

	// The losing commit left nothing behind.
	occupied, err := store.BookedSeats(ctx, "mv-001", "12:00")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"C7", "C8"}, occupied)
}

func TestSequentialDisjointCommitsAccumulate(t *testing.T) {
	store := newFakeBookings()
	svc := NewBookingService(testCatalog(), store, nil)
	ctx := context.Background()

	_, err := svc.Commit(ctx, 1, testOrder(t, "A1", "A2"))
	require.NoError(t, err)
	_, err = svc.Commit(ctx, 2, testOrder(t, "B1", "B2"))
	require.NoError(t, err)

	occupied := svc.BookedSeats(ctx, "mv-001", "12:00")
	assert.ElementsMatch(t, []string{"A1", "A2", "B1", "B2"}, booking.Labels(occupied))
}

func TestBookedSeatsFailsOpen(t *testing.T) {
	store := newFakeBookings()
	store.failQuery = errors.New("connection refused")
	svc := NewBookingService(testCatalog(), store, nil)

	occupied := svc.BookedSeats(context.Background(), "mv-001", "12:00")
	assert.Empty(t, occupied)
}

func TestCommitIgnoresPublisherFailure(t *testing.T) {
	store := newFakeBookings()
	pub := &recordingPublisher{fail: errors.New("broker down")}
	svc := NewBookingService(testCatalog(), store, pub)

	b, err := svc.Commit(context.Background(), 3, testOrder(t, "D4"))
	require.NoError(t, err)
	assert.NotZero(t, b.ID)
	assert.Len(t, pub.events, 1)
}

func TestCommitWrapsPersistenceError(t *testing.T) {
	store := newFakeBookings()
	store.failCreate = errors.New("disk full")
	svc := NewBookingService(testCatalog(), store, nil)

	_, err := svc.Commit(context.Background(), 1, testOrder(t, "A1"))
	require.Error(t, err)
	var conflict *booking.SeatConflictError
	assert.False(t, errors.As(err, &conflict))
	assert.Contains(t, err.Error(), "persist booking")
}
