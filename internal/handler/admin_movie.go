package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-ticket-booking/internal/model"
	"github.com/iliyamo/movie-ticket-booking/internal/repository"
	"github.com/iliyamo/movie-ticket-booking/internal/utils"
)

// AdminHandler serves catalog management and the all-bookings view.
// Routes using it sit behind JWTAuth + RequireRole(ADMIN).
type AdminHandler struct {
	Movies   *repository.MovieRepo
	Bookings *repository.BookingRepo
}

func NewAdminHandler(movies *repository.MovieRepo, bookings *repository.BookingRepo) *AdminHandler {
	if movies == nil || bookings == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{Movies: movies, Bookings: bookings}
}

type movieReq struct {
	ID          string   `json:"id"` // optional on create; generated when empty
	Title       string   `json:"title"`
	Genre       string   `json:"genre"`
	DurationMin int      `json:"duration_min"`
	Rating      string   `json:"rating"`
	Poster      string   `json:"poster"`
	Synopsis    string   `json:"synopsis"`
	Price       int64    `json:"price"`
	Status      string   `json:"status"`
	Showtimes   []string `json:"showtimes"`
}

func (r *movieReq) toModel() (model.Movie, string) {
	title := strings.TrimSpace(r.Title)
	if title == "" {
		return model.Movie{}, "title is required"
	}
	if r.Price <= 0 {
		return model.Movie{}, "price must be positive"
	}
	status := strings.ToLower(strings.TrimSpace(r.Status))
	if status == "" {
		status = model.MovieComingSoon
	}
	if status != model.MovieNowPlaying && status != model.MovieComingSoon {
		return model.Movie{}, "status must be now_playing or coming_soon"
	}
	showtimes := make([]string, 0, len(r.Showtimes))
	seen := make(map[string]struct{}, len(r.Showtimes))
	for _, s := range r.Showtimes {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			return model.Movie{}, "duplicate showtime " + s
		}
		seen[s] = struct{}{}
		showtimes = append(showtimes, s)
	}
	// A movie on sale must have something to sell.
	if status == model.MovieNowPlaying && len(showtimes) == 0 {
		return model.Movie{}, "now_playing movie requires at least one showtime"
	}
	return model.Movie{
		ID:          strings.TrimSpace(r.ID),
		Title:       title,
		Genre:       strings.TrimSpace(r.Genre),
		DurationMin: r.DurationMin,
		Rating:      strings.TrimSpace(r.Rating),
		Poster:      strings.TrimSpace(r.Poster),
		Synopsis:    r.Synopsis,
		Price:       r.Price,
		Status:      status,
		Showtimes:   showtimes,
	}, ""
}

// CreateMovie handles POST /v1/admin/movies.
func (h *AdminHandler) CreateMovie(c echo.Context) error {
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	m, msg := req.toModel()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	if m.ID == "" {
		id, err := utils.NewMovieID()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "generate id failed"})
		}
		m.ID = id
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Movies.Create(ctx, &m); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return c.JSON(http.StatusConflict, echo.Map{"error": "movie id already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create movie failed"})
	}
	return c.JSON(http.StatusCreated, toMovieResp(m))
}

// UpdateMovie handles PUT /v1/admin/movies/:id.
func (h *AdminHandler) UpdateMovie(c echo.Context) error {
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	m, msg := req.toModel()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	m.ID = c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Movies.Update(ctx, &m); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update movie failed"})
	}
	return c.JSON(http.StatusOK, toMovieResp(m))
}

// DeleteMovie handles DELETE /v1/admin/movies/:id.  Bookings that
// reference the movie keep their denormalized title and poster.
func (h *AdminHandler) DeleteMovie(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Movies.Delete(ctx, c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete movie failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListAllBookings handles GET /v1/admin/bookings.
func (h *AdminHandler) ListAllBookings(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bookings, err := h.Bookings.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]bookingResp, len(bookings))
	for i, b := range bookings {
		out[i] = toBookingResp(b)
	}
	return c.JSON(http.StatusOK, out)
}

// AdminDeleteBooking handles DELETE /v1/admin/bookings/:id, removing
// any user's booking.
func (h *AdminHandler) AdminDeleteBooking(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseBookingID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Bookings.DeleteByID(ctx, id, uid, true); err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete booking failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
