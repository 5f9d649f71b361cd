// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/movie-ticket-booking/internal/config"
	"github.com/iliyamo/movie-ticket-booking/internal/handler"
	"github.com/iliyamo/movie-ticket-booking/internal/middleware"
)

// RegisterRoutes registers routes that need no authentication.
func RegisterRoutes(e *echo.Echo) {
	// Used by load balancers and monitoring to verify liveness.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints.
// Unauthenticated operations live under /v1/auth; /v1/me requires a
// valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterPublic registers guest-visible catalog endpoints.  GET
// responses are cached in Redis and all routes sit behind the token
// bucket limiter; both degrade to pass-through when Redis is absent.
func RegisterPublic(e *echo.Echo, m *handler.MovieHandler, rdb *redis.Client) {
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	limitMW := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	g := e.Group("/v1", limitMW)
	g.GET("/movies", m.ListMovies, cacheMW)
	g.GET("/movies/:id", m.GetMovie, cacheMW)
	// Seat availability is deliberately uncached: stale occupancy would
	// funnel users into conflict responses at commit.
	g.GET("/movies/:id/seats", m.GetShowingSeats)
}

// RegisterBookings registers the booking endpoints.  All routes
// require a valid JWT; both roles may book.
func RegisterBookings(e *echo.Echo, b *handler.BookingHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN", "USER"),
	)
	g.POST("/bookings", b.CreateBooking)
	g.GET("/my-bookings", b.ListMyBookings)
	g.DELETE("/bookings/:id", b.DeleteBooking)
	g.DELETE("/bookings", b.ClearBookings)
}

// RegisterAdmin registers catalog management and the all-bookings
// view, restricted to the ADMIN role.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)
	g.POST("/movies", a.CreateMovie)
	g.PUT("/movies/:id", a.UpdateMovie)
	g.DELETE("/movies/:id", a.DeleteMovie)
	g.GET("/bookings", a.ListAllBookings)
	g.DELETE("/bookings/:id", a.AdminDeleteBooking)
}
