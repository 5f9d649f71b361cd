package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-ticket-booking/internal/booking"
	"github.com/iliyamo/movie-ticket-booking/internal/model"
	"github.com/iliyamo/movie-ticket-booking/internal/repository"
	"github.com/iliyamo/movie-ticket-booking/internal/service"
)

// BookingBrowser is the slice of the booking store the handler needs
// for history and deletes.  *repository.BookingRepo satisfies it.
type BookingBrowser interface {
	ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error)
	DeleteByID(ctx context.Context, id, userID uint64, admin bool) error
	DeleteMany(ctx context.Context, ids []uint64, userID uint64) (int, error)
}

// BookingHandler serves the booking endpoints for authenticated users:
// committing an order, listing history and deleting bookings.
type BookingHandler struct {
	Service *service.BookingService
	Repo    BookingBrowser
}

func NewBookingHandler(svc *service.BookingService, repo BookingBrowser) *BookingHandler {
	if svc == nil || repo == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Service: svc, Repo: repo}
}

type createBookingReq struct {
	MovieID       string   `json:"movie_id"`
	Showtime      string   `json:"showtime"`
	Seats         []string `json:"seats"`
	Quantity      int      `json:"quantity"`
	CustomerName  string   `json:"customer_name"`
	PaymentMethod string   `json:"payment_method"`
}

type bookingResp struct {
	ID            uint64   `json:"id"`
	MovieID       string   `json:"movie_id"`
	Title         string   `json:"title"`
	Poster        string   `json:"poster,omitempty"`
	Showtime      string   `json:"showtime"`
	Quantity      int      `json:"quantity"`
	Seats         []string `json:"seats"`
	TotalPrice    int64    `json:"total_price"`
	CustomerName  string   `json:"customer_name"`
	PaymentStatus string   `json:"payment_status"`
	PaymentMethod string   `json:"payment_method"`
	CreatedAt     string   `json:"created_at"`
}

func toBookingResp(b model.Booking) bookingResp {
	return bookingResp{
		ID:            b.ID,
		MovieID:       b.MovieID,
		Title:         b.Title,
		Poster:        b.Poster,
		Showtime:      b.Showtime,
		Quantity:      b.Quantity,
		Seats:         b.Seats,
		TotalPrice:    b.TotalPrice,
		CustomerName:  b.CustomerName,
		PaymentStatus: b.PaymentStatus,
		PaymentMethod: b.PaymentMethod,
		CreatedAt:     b.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// CreateBooking handles POST /v1/bookings.  It runs the commit
// workflow: validate the order, persist the paid booking, surface a
// 409 with the conflicting seats when someone else committed them
// first.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	seats, err := booking.ParseSeats(req.Seats)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	method, err := booking.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "payment_method must be cash, qris or card"})
	}
	order := booking.Order{
		MovieID:       req.MovieID,
		Showtime:      req.Showtime,
		Seats:         seats,
		Quantity:      req.Quantity,
		CustomerName:  req.CustomerName,
		PaymentMethod: method,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Service.Commit(ctx, uid, order)
	if err != nil {
		var conflict *booking.SeatConflictError
		switch {
		case errors.Is(err, booking.ErrMovieNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		case errors.Is(err, booking.ErrInvalidShowtime):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "showtime not offered for movie"})
		case errors.Is(err, booking.ErrSeatCountMismatch):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat count does not match quantity"})
		case errors.Is(err, booking.ErrMissingCustomerName):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "customer name is required"})
		case errors.Is(err, booking.ErrInvalidSeat):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.As(err, &conflict):
			return c.JSON(http.StatusConflict, echo.Map{
				"error":    "seats already booked",
				"conflict": booking.Labels(conflict.Seats),
			})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
		}
	}
	return c.JSON(http.StatusCreated, toBookingResp(b))
}

// ListMyBookings handles GET /v1/my-bookings, newest first.
func (h *BookingHandler) ListMyBookings(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bookings, err := h.Repo.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]bookingResp, len(bookings))
	for i, b := range bookings {
		out[i] = toBookingResp(b)
	}
	return c.JSON(http.StatusOK, out)
}

// DeleteBooking handles DELETE /v1/bookings/:id for the booking owner.
func (h *BookingHandler) DeleteBooking(c echo.Context) error {
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

	if err := h.Repo.DeleteByID(ctx, id, uid, isAdmin(c)); err != nil {
		switch {
		case errors.Is(err, repository.ErrBookingNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete booking failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}

// ClearBookings handles DELETE /v1/bookings with a JSON body of ids.
// Only the caller's own bookings are removed; foreign or unknown ids
// are skipped.
func (h *BookingHandler) ClearBookings(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		IDs []uint64 `json:"ids"`
	}
	if err := c.Bind(&body); err != nil || len(body.IDs) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ids required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	deleted, err := h.Repo.DeleteMany(ctx, body.IDs, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete bookings failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": deleted})
}

func parseBookingID(s string) (uint64, bool) {
	id, err := strconv.ParseUint(s, 10, 64)
	return id, err == nil && id > 0
}
