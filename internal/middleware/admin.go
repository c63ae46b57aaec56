package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-order-backend/internal/model"
	"github.com/iliyamo/restaurant-order-backend/internal/repository"
)

// RoleLookup is the slice of the identity store the authorization gate
// needs.  *repository.UserRepo satisfies it.
type RoleLookup interface {
	RoleByEmail(ctx context.Context, email string) (string, error)
}

// RequireAdmin returns the authorization gate.  It must be composed after
// RequireAuth: it resolves the claim email against the identity store and
// lets the request proceed only when the registered role is admin.
//
// A token issued for an email that was never registered is treated exactly
// like a wrong role (403), never as a server error: holding a verifiable
// token says nothing about being a known user.  The check is a separate
// gate rather than part of authentication so routes that need only a valid
// identity do not pay for (or depend on) the role lookup.
func RequireAdmin(store RoleLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email := ClaimEmail(c)
			if email == "" {
				return forbidden(c)
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()

			role, err := store.RoleByEmail(ctx, email)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return forbidden(c)
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{
					"error": true, "message": "role lookup failed",
				})
			}
			if role != model.RoleAdmin {
				return forbidden(c)
			}
			return next(c)
		}
	}
}

func forbidden(c echo.Context) error {
	return c.JSON(http.StatusForbidden, echo.Map{
		"error": true, "message": "forbidden access",
	})
}
