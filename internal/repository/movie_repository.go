package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/movie-ticket-booking/internal/model"
)

// MovieRepo provides catalog access.  Movies live in the movies table;
// their showtime labels live in movie_showtimes ordered by position so
// the sequence shown to users is stable.
type MovieRepo struct{ DB *sql.DB }

func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{DB: db} }

const movieColumns = "id,title,genre,duration_min,rating,poster,synopsis,price,status,created_at,updated_at"

func scanMovie(row interface{ Scan(...any) error }) (model.Movie, error) {
	var m model.Movie
	err := row.Scan(&m.ID, &m.Title, &m.Genre, &m.DurationMin, &m.Rating,
		&m.Poster, &m.Synopsis, &m.Price, &m.Status, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// GetByID loads a movie and its showtimes.  Returns ErrMovieNotFound
// when no row exists.
func (r *MovieRepo) GetByID(ctx context.Context, id string) (model.Movie, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+movieColumns+" FROM movies WHERE id=? LIMIT 1", id)
	m, err := scanMovie(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.Movie{}, ErrMovieNotFound
		}
		return model.Movie{}, err
	}
	if m.Showtimes, err = r.showtimes(ctx, m.ID); err != nil {
		return model.Movie{}, err
	}
	return m, nil
}

// List returns the full catalog ordered by title, each movie with its
// showtimes attached.
func (r *MovieRepo) List(ctx context.Context) ([]model.Movie, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+movieColumns+" FROM movies ORDER BY title")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := make([]model.Movie, 0)
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range movies {
		if movies[i].Showtimes, err = r.showtimes(ctx, movies[i].ID); err != nil {
			return nil, err
		}
	}
	return movies, nil
}

// Create inserts a movie with its showtimes in one transaction.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO movies (id,title,genre,duration_min,rating,poster,synopsis,price,status) VALUES (?,?,?,?,?,?,?,?,?)",
			m.ID, m.Title, m.Genre, m.DurationMin, m.Rating, m.Poster, m.Synopsis, m.Price, m.Status)
		if err != nil {
			return err
		}
		return insertShowtimesTx(ctx, tx, m.ID, m.Showtimes)
	})
}

// Update rewrites a movie row and replaces its showtime list.
func (r *MovieRepo) Update(ctx context.Context, m *model.Movie) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			"UPDATE movies SET title=?,genre=?,duration_min=?,rating=?,poster=?,synopsis=?,price=?,status=? WHERE id=?",
			m.Title, m.Genre, m.DurationMin, m.Rating, m.Poster, m.Synopsis, m.Price, m.Status, m.ID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			// RowsAffected is 0 both for a missing row and for a no-op
			// update, so confirm existence explicitly.
			var one int
			if err := tx.QueryRowContext(ctx, "SELECT 1 FROM movies WHERE id=?", m.ID).Scan(&one); err != nil {
				if err == sql.ErrNoRows {
					return ErrMovieNotFound
				}
				return err
			}
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM movie_showtimes WHERE movie_id=?", m.ID); err != nil {
			return err
		}
		return insertShowtimesTx(ctx, tx, m.ID, m.Showtimes)
	})
}

// Delete removes a movie and its showtimes.  Existing bookings keep
// their denormalized title/poster and are not touched.
func (r *MovieRepo) Delete(ctx context.Context, id string) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM movie_showtimes WHERE movie_id=?", id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, "DELETE FROM movies WHERE id=?", id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrMovieNotFound
		}
		return nil
	})
}

func (r *MovieRepo) showtimes(ctx context.Context, movieID string) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT label FROM movie_showtimes WHERE movie_id=? ORDER BY position", movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	labels := make([]string, 0, 4)
	for rows.Next() {
		var l string
		if err := rows.Scan(&l); err != nil {
			return nil, err
		}
		labels = append(labels, l)
	}
	return labels, rows.Err()
}

func insertShowtimesTx(ctx context.Context, tx *sql.Tx, movieID string, labels []string) error {
	for i, l := range labels {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO movie_showtimes (movie_id, position, label) VALUES (?,?,?)",
			movieID, i, l); err != nil {
			return fmt.Errorf("insert showtime %q: %w", l, err)
		}
	}
	return nil
}

func (r *MovieRepo) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
