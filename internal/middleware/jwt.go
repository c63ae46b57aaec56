package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/iliyamo/restaurant-order-backend/internal/utils"
)

// ContextEmailKey is the echo context key under which the authentication
// gate stores the verified claim email.  The value is scoped to the current
// request only; it is never cached or reused across requests.
const ContextEmailKey = "email"

// RequireAuth returns the authentication gate: an Echo middleware that
// demands a valid, unexpired bearer token before any handler logic runs.
// The header must be in the literal form "Bearer <token>".  A missing
// header and a failed verification are both terminal with the same
// machine-readable 401 envelope {error:true, message}.
func RequireAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": true, "message": "unauthorized access",
				})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			claims, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": true, "message": "unauthorized access",
				})
			}

			// The verified claim travels with this request only.
			c.Set(ContextEmailKey, claims.Email)
			return next(c)
		}
	}
}

// ClaimEmail extracts the verified email stored by RequireAuth.  It returns
// the empty string when the gate did not run, which downstream gates and
// handlers treat as an authorization failure rather than a server error.
func ClaimEmail(c echo.Context) string {
	if v, ok := c.Get(ContextEmailKey).(string); ok {
		return v
	}
	return ""
}
