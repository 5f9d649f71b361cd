package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iliyamo/movie-ticket-booking/internal/model"
)

// BookingRepo provides access to bookings and their seats.  A booking
// row plus its booking_seats rows are written in a single transaction;
// the UNIQUE key uq_showing_seat (movie_id, showtime, seat_label) on
// booking_seats is the arbiter against double-booking.  Timestamps are
// stored in UTC.
type BookingRepo struct{ DB *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{DB: db} }

const bookingColumns = "id,user_id,movie_id,title,poster,showtime,quantity,total_price,customer_name,payment_status,payment_method,created_at"

// Create inserts the booking and its seat rows atomically.  On success
// the generated ID and CreatedAt are populated on b.  When another
// booking already holds one of the seats for the same showing, the
// transaction is rolled back and ErrSeatTaken is returned; no partial
// state survives.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	res, err := tx.ExecContext(ctx,
		`INSERT INTO bookings
		   (user_id, movie_id, title, poster, showtime, quantity, total_price, customer_name, payment_status, payment_method, created_at)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		b.UserID, b.MovieID, b.Title, b.Poster, b.Showtime, b.Quantity,
		b.TotalPrice, b.CustomerName, b.PaymentStatus, b.PaymentMethod, now)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	for _, seat := range b.Seats {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO booking_seats (booking_id, movie_id, showtime, seat_label) VALUES (?,?,?,?)",
			uint64(id), b.MovieID, b.Showtime, seat); err != nil {
			// MySQL 1062 = duplicate entry on uq_showing_seat.
			if strings.Contains(strings.ToLower(err.Error()), "1062") {
				return ErrSeatTaken
			}
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	b.ID = uint64(id)
	b.CreatedAt = now
	return nil
}

// ListByUser returns a user's bookings newest-first, seats attached.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	return r.list(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE user_id=? ORDER BY created_at DESC, id DESC",
		userID)
}

// ListAll returns every booking newest-first.  Intended for admins.
func (r *BookingRepo) ListAll(ctx context.Context) ([]model.Booking, error) {
	return r.list(ctx,
		"SELECT " + bookingColumns + " FROM bookings ORDER BY created_at DESC, id DESC")
}

// ListByShowing returns all bookings for one (movie, showtime) pair
// regardless of owner.  Used by the occupancy query.
func (r *BookingRepo) ListByShowing(ctx context.Context, movieID, showtime string) ([]model.Booking, error) {
	return r.list(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE movie_id=? AND showtime=? ORDER BY id",
		movieID, showtime)
}

// BookedSeats returns the flattened set of seat labels committed for a
// showing across all bookings.
func (r *BookingRepo) BookedSeats(ctx context.Context, movieID, showtime string) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT seat_label FROM booking_seats WHERE movie_id=? AND showtime=? ORDER BY seat_label",
		movieID, showtime)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	labels := make([]string, 0)
	for rows.Next() {
		var l string
		if err := rows.Scan(&l); err != nil {
			return nil, err
		}
		labels = append(labels, l)
	}
	return labels, rows.Err()
}

// DeleteByID removes a booking owned by userID.  It returns
// ErrBookingNotFound when no such booking exists and ErrForbidden when
// the booking belongs to somebody else and the caller is not an admin.
func (r *BookingRepo) DeleteByID(ctx context.Context, id, userID uint64, admin bool) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var owner uint64
	err = tx.QueryRowContext(ctx, "SELECT user_id FROM bookings WHERE id=? LIMIT 1", id).Scan(&owner)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrBookingNotFound
		}
		return err
	}
	if owner != userID && !admin {
		return ErrForbidden
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM booking_seats WHERE booking_id=?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM bookings WHERE id=?", id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// DeleteMany removes the given bookings for userID, skipping ids that
// do not exist or belong to someone else.  It reports how many
// bookings were removed.
func (r *BookingRepo) DeleteMany(ctx context.Context, ids []uint64, userID uint64) (int, error) {
	deleted := 0
	for _, id := range ids {
		switch err := r.DeleteByID(ctx, id, userID, false); err {
		case nil:
			deleted++
		case ErrBookingNotFound, ErrForbidden:
			// skip silently; bulk clear is best-effort per id
		default:
			return deleted, err
		}
	}
	return deleted, nil
}

func (r *BookingRepo) list(ctx context.Context, query string, args ...any) ([]model.Booking, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]model.Booking, 0)
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.UserID, &b.MovieID, &b.Title, &b.Poster,
			&b.Showtime, &b.Quantity, &b.TotalPrice, &b.CustomerName,
			&b.PaymentStatus, &b.PaymentMethod, &b.CreatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range bookings {
		if bookings[i].Seats, err = r.seatsFor(ctx, bookings[i].ID); err != nil {
			return nil, err
		}
	}
	return bookings, nil
}

func (r *BookingRepo) seatsFor(ctx context.Context, bookingID uint64) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT seat_label FROM booking_seats WHERE booking_id=? ORDER BY id", bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	labels := make([]string, 0, 2)
	for rows.Next() {
		var l string
		if err := rows.Scan(&l); err != nil {
			return nil, err
		}
		labels = append(labels, l)
	}
	return labels, rows.Err()
}
