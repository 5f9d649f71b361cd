package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-ticket-booking/internal/booking"
	"github.com/iliyamo/movie-ticket-booking/internal/model"
	"github.com/iliyamo/movie-ticket-booking/internal/repository"
	"github.com/iliyamo/movie-ticket-booking/internal/service"
)

// MovieHandler serves the public catalog: movie browsing and per-
// showing seat availability.  No authentication is required so guests
// can browse before signing in.
type MovieHandler struct {
	Movies   *repository.MovieRepo
	Bookings *service.BookingService
}

func NewMovieHandler(movies *repository.MovieRepo, bookings *service.BookingService) *MovieHandler {
	if movies == nil || bookings == nil {
		panic("nil dependency passed to NewMovieHandler")
	}
	return &MovieHandler{Movies: movies, Bookings: bookings}
}

type movieResp struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Genre       string   `json:"genre"`
	DurationMin int      `json:"duration_min"`
	Rating      string   `json:"rating"`
	Poster      string   `json:"poster,omitempty"`
	Synopsis    string   `json:"synopsis"`
	Price       int64    `json:"price"`
	Status      string   `json:"status"`
	Showtimes   []string `json:"showtimes"`
}

func toMovieResp(m model.Movie) movieResp {
	return movieResp{
		ID:          m.ID,
		Title:       m.Title,
		Genre:       m.Genre,
		DurationMin: m.DurationMin,
		Rating:      m.Rating,
		Poster:      m.Poster,
		Synopsis:    m.Synopsis,
		Price:       m.Price,
		Status:      m.Status,
		Showtimes:   m.Showtimes,
	}
}

// ListMovies handles GET /v1/movies.
func (h *MovieHandler) ListMovies(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	movies, err := h.Movies.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]movieResp, len(movies))
	for i, m := range movies {
		out[i] = toMovieResp(m)
	}
	return c.JSON(http.StatusOK, out)
}

// GetMovie handles GET /v1/movies/:id.
func (h *MovieHandler) GetMovie(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m, err := h.Movies.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toMovieResp(m))
}

type seatStatus struct {
	Seat   string `json:"seat"`
	Booked bool   `json:"booked"`
}

// GetShowingSeats handles GET /v1/movies/:id/seats?showtime=HH:MM.  It
// returns the full 80-seat grid in row-major order with each seat
// flagged booked or free for the requested showing.  When the
// occupancy lookup fails the grid is returned with every seat free;
// the commit-time uniqueness key still prevents double booking.
func (h *MovieHandler) GetShowingSeats(c echo.Context) error {
	showtime := strings.TrimSpace(c.QueryParam("showtime"))
	if showtime == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "showtime query parameter required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m, err := h.Movies.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !m.HasShowtime(showtime) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "showtime not offered for movie"})
	}

	occupied := h.Bookings.BookedSeats(ctx, m.ID, showtime)
	taken := make(map[booking.Seat]struct{}, len(occupied))
	for _, s := range occupied {
		taken[s] = struct{}{}
	}

	grid := booking.SeatMap()
	seats := make([]seatStatus, len(grid))
	for i, s := range grid {
		_, booked := taken[s]
		seats[i] = seatStatus{Seat: s.String(), Booked: booked}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"movie_id": m.ID,
		"showtime": showtime,
		"seats":    seats,
		"booked":   booking.Labels(occupied),
	})
}
