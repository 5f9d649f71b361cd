package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-ticket-booking/internal/model"
	"github.com/iliyamo/movie-ticket-booking/internal/repository"
	"github.com/iliyamo/movie-ticket-booking/internal/service"
)

type stubCatalog struct{ movie model.Movie }

func (s *stubCatalog) GetByID(_ context.Context, id string) (model.Movie, error) {
	if id == s.movie.ID {
		return s.movie, nil
	}
	return model.Movie{}, repository.ErrMovieNotFound
}

type stubBookings struct {
	created []model.Booking
	taken   []string
}

func (s *stubBookings) Create(_ context.Context, b *model.Booking) error {
	for _, seat := range b.Seats {
		for _, t := range s.taken {
			if seat == t {
				return repository.ErrSeatTaken
			}
		}
	}
	b.ID = uint64(len(s.created) + 1)
	b.CreatedAt = time.Now().UTC()
	s.created = append(s.created, *b)
	return nil
}

func (s *stubBookings) BookedSeats(_ context.Context, _, _ string) ([]string, error) {
	return s.taken, nil
}

func (s *stubBookings) ListByUser(_ context.Context, userID uint64) ([]model.Booking, error) {
	var out []model.Booking
	for i := len(s.created) - 1; i >= 0; i-- {
		if s.created[i].UserID == userID {
			out = append(out, s.created[i])
		}
	}
	return out, nil
}

func (s *stubBookings) DeleteByID(_ context.Context, id, userID uint64, admin bool) error {
	for i, b := range s.created {
		if b.ID != id {
			continue
		}
		if !admin && b.UserID != userID {
			return repository.ErrForbidden
		}
		s.created = append(s.created[:i], s.created[i+1:]...)
		return nil
	}
	return repository.ErrBookingNotFound
}

func (s *stubBookings) DeleteMany(_ context.Context, ids []uint64, userID uint64) (int, error) {
	deleted := 0
	for _, id := range ids {
		if err := s.DeleteByID(nil, id, userID, false); err == nil {
			deleted++
		}
	}
	return deleted, nil
}

func newBookingTestHandler(store *stubBookings) *BookingHandler {
	catalog := &stubCatalog{movie: model.Movie{
		ID:        "mv-001",
		Title:     "Cars",
		Price:     40000,
		Status:    model.MovieNowPlaying,
		Showtimes: []string{"12:00", "15:00"},
	}}
	svc := service.NewBookingService(catalog, store, nil)
	return NewBookingHandler(svc, store)
}

func bookingCtx(t *testing.T, method, target, body string, uid uint64) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", float64(uid))
	c.Set("role", model.RoleUser)
	return c, rec
}

func seedBooking(t *testing.T, store *stubBookings, userID uint64, seats ...string) uint64 {
	t.Helper()
	b := model.Booking{
		UserID:   userID,
		MovieID:  "mv-001",
		Title:    "Cars",
		Showtime: "12:00",
		Quantity: len(seats),
		Seats:    seats,
	}
	require.NoError(t, store.Create(nil, &b))
	return b.ID
}

func postBooking(t *testing.T, h *BookingHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	// JWTAuth normally injects user_id and role from the token claims;
	// bookingCtx plays that part here.
	c, rec := bookingCtx(t, http.MethodPost, "/v1/bookings", body, 42)
	require.NoError(t, h.CreateBooking(c))
	return rec
}

func TestCreateBookingSuccess(t *testing.T) {
	store := &stubBookings{}
	h := newBookingTestHandler(store)

	rec := postBooking(t, h, `{
		"movie_id": "mv-001",
		"showtime": "12:00",
		"seats": ["A1", "A2"],
		"quantity": 2,
		"customer_name": "Budi",
		"payment_method": "qris"
	}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, float64(80000), resp["total_price"])
	assert.Equal(t, "paid", resp["payment_status"])
	assert.Equal(t, "qris", resp["payment_method"])
	require.Len(t, store.created, 1)
	assert.Equal(t, uint64(42), store.created[0].UserID)
}

func TestCreateBookingValidationFailures(t *testing.T) {
	cases := []struct {
		name string
		body string
		code int
	}{
		{"seat count mismatch", `{"movie_id":"mv-001","showtime":"12:00","seats":["A1"],"quantity":2,"customer_name":"Budi","payment_method":"cash"}`, http.StatusBadRequest},
		{"unknown movie", `{"movie_id":"mv-404","showtime":"12:00","seats":["A1"],"quantity":1,"customer_name":"Budi","payment_method":"cash"}`, http.StatusNotFound},
		{"unknown showtime", `{"movie_id":"mv-001","showtime":"23:59","seats":["A1"],"quantity":1,"customer_name":"Budi","payment_method":"cash"}`, http.StatusBadRequest},
		{"missing name", `{"movie_id":"mv-001","showtime":"12:00","seats":["A1"],"quantity":1,"customer_name":" ","payment_method":"cash"}`, http.StatusBadRequest},
		{"bad seat label", `{"movie_id":"mv-001","showtime":"12:00","seats":["Z9"],"quantity":1,"customer_name":"Budi","payment_method":"cash"}`, http.StatusBadRequest},
		{"bad payment method", `{"movie_id":"mv-001","showtime":"12:00","seats":["A1"],"quantity":1,"customer_name":"Budi","payment_method":"gold"}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &stubBookings{}
			rec := postBooking(t, newBookingTestHandler(store), tc.body)
			assert.Equal(t, tc.code, rec.Code)
			assert.Empty(t, store.created, "no repository write on validation failure")
		})
	}
}

func TestCreateBookingSeatConflict(t *testing.T) {
	store := &stubBookings{taken: []string{"C8"}}
	h := newBookingTestHandler(store)

	rec := postBooking(t, h, `{
		"movie_id": "mv-001",
		"showtime": "12:00",
		"seats": ["C8", "C9"],
		"quantity": 2,
		"customer_name": "Sari",
		"payment_method": "card"
	}`)

	require.Equal(t, http.StatusConflict, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []any{"C8"}, resp["conflict"])
	assert.Empty(t, store.created)
}

func listBookings(t *testing.T, h *BookingHandler, uid uint64) []bookingResp {
	t.Helper()
	c, rec := bookingCtx(t, http.MethodGet, "/v1/my-bookings", "", uid)
	require.NoError(t, h.ListMyBookings(c))
	require.Equal(t, http.StatusOK, rec.Code)
	var out []bookingResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func deleteBooking(t *testing.T, h *BookingHandler, uid, id uint64) *httptest.ResponseRecorder {
	t.Helper()
	c, rec := bookingCtx(t, http.MethodDelete, "/v1/bookings/1", "", uid)
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatUint(id, 10))
	require.NoError(t, h.DeleteBooking(c))
	return rec
}

func TestDeleteBookingRemovesFromHistory(t *testing.T) {
	store := &stubBookings{}
	h := newBookingTestHandler(store)
	mine := seedBooking(t, store, 42, "A1", "A2")
	keep := seedBooking(t, store, 42, "B1")

	rec := deleteBooking(t, h, 42, mine)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	left := listBookings(t, h, 42)
	require.Len(t, left, 1)
	assert.Equal(t, keep, left[0].ID)

	// The id is gone now.
	rec = deleteBooking(t, h, 42, mine)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteBookingDoesNotTouchOtherUsers(t *testing.T) {
	store := &stubBookings{}
	h := newBookingTestHandler(store)
	theirs := seedBooking(t, store, 7, "D4")
	seedBooking(t, store, 42, "D5")

	rec := deleteBooking(t, h, 42, theirs)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	others := listBookings(t, h, 7)
	require.Len(t, others, 1)
	assert.Equal(t, theirs, others[0].ID)
}

func TestClearBookingsSkipsForeignAndUnknownIDs(t *testing.T) {
	store := &stubBookings{}
	h := newBookingTestHandler(store)
	a := seedBooking(t, store, 42, "E1")
	b := seedBooking(t, store, 42, "E2")
	theirs := seedBooking(t, store, 7, "E3")

	body, err := json.Marshal(map[string][]uint64{"ids": {a, b, theirs, 999}})
	require.NoError(t, err)
	c, rec := bookingCtx(t, http.MethodDelete, "/v1/bookings", string(body), 42)
	require.NoError(t, h.ClearBookings(c))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, float64(2), resp["deleted"])

	assert.Empty(t, listBookings(t, h, 42))
	assert.Len(t, listBookings(t, h, 7), 1)
}
