package middleware

// identity.go provides helpers shared across middleware files for
// identifying the requesting user when building cache and rate-limit
// keys.

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// userID returns a string form of the authenticated user id stored in
// context by JWTAuth, or "guest" when the request is unauthenticated.
func userID(c echo.Context) string {
	v := c.Get("user_id")
	if v == nil {
		return "guest"
	}
	switch t := v.(type) {
	case string:
		if t != "" {
			return t
		}
	case float64:
		return fmt.Sprintf("%.0f", t)
	case uint64:
		return fmt.Sprintf("%d", t)
	}
	return "guest"
}
