// Package repository implements data access over MySQL for users,
// movies and bookings.  This file defines sentinel error values shared
// across repositories so that handlers can map failures to distinct
// HTTP responses with errors.Is.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own, such as deleting another user's booking.
// Handlers should translate this into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrMovieNotFound is returned when no movie exists for the given id.
var ErrMovieNotFound = errors.New("movie not found")

// ErrBookingNotFound is returned when no booking exists for the given id.
var ErrBookingNotFound = errors.New("booking not found")

// ErrSeatTaken is returned when inserting booking seats trips the
// uniqueness key on (movie_id, showtime, seat_label), meaning another
// booking already holds at least one of the requested seats.
var ErrSeatTaken = errors.New("seat already booked for showing")
