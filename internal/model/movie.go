package model

import "time"

// Movie statuses as stored in the movies.status column.
const (
	MovieNowPlaying = "now_playing"
	MovieComingSoon = "coming_soon"
)

// Movie represents an entry in the catalog.  Showtimes are stored in
// the movie_showtimes child table and loaded alongside the movie in
// their defined order.  Prices are whole currency units per ticket;
// the market has no minor units so no cents column exists.
//
// Invariant enforced at write time: a now_playing movie carries at
// least one showtime.
type Movie struct {
	ID          string    // movies.id, e.g. "mv-001"
	Title       string    // movies.title
	Genre       string    // movies.genre
	DurationMin int       // movies.duration_min
	Rating      string    // movies.rating, e.g. "PG-13"
	Poster      string    // movies.poster (image URL, may be empty)
	Synopsis    string    // movies.synopsis
	Price       int64     // movies.price, whole units per ticket
	Status      string    // movies.status (now_playing | coming_soon)
	Showtimes   []string  // movie_showtimes.label ordered by position
	CreatedAt   time.Time // movies.created_at
	UpdatedAt   time.Time // movies.updated_at
}

// HasShowtime reports whether the label is one of the movie's offered
// showtimes.
func (m *Movie) HasShowtime(label string) bool {
	for _, s := range m.Showtimes {
		if s == label {
			return true
		}
	}
	return false
}
