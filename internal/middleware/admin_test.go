package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/restaurant-order-backend/internal/middleware"
	"github.com/iliyamo/restaurant-order-backend/internal/repository"
)

// fakeRoles maps email -> role; unknown emails return ErrNotFound like the
// real identity store.
type fakeRoles map[string]string

func (f fakeRoles) RoleByEmail(_ context.Context, email string) (string, error) {
	role, ok := f[email]
	if !ok {
		return "", repository.ErrNotFound
	}
	return role, nil
}

// runAdminGate runs RequireAdmin with the claim email pre-set, as
// RequireAuth would have left it.
func runAdminGate(t *testing.T, roles fakeRoles, claimEmail string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if claimEmail != "" {
		c.Set(middleware.ContextEmailKey, claimEmail)
	}

	handlerRan := false
	h := middleware.RequireAdmin(roles)(func(c echo.Context) error {
		handlerRan = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, handlerRan
}

func TestRequireAdmin_AdminPasses(t *testing.T) {
	rec, ran := runAdminGate(t, fakeRoles{"boss@x.com": "admin"}, "boss@x.com")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, ran)
}

func TestRequireAdmin_WrongRoleForbidden(t *testing.T) {
	rec, ran := runAdminGate(t, fakeRoles{"u@x.com": ""}, "u@x.com")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, ran)
	assert.Contains(t, rec.Body.String(), "forbidden access")
}

func TestRequireAdmin_UnknownEmailForbiddenNotServerError(t *testing.T) {
	// A verifiable token for an email that was never registered must be
	// handled exactly like a wrong role.
	rec, ran := runAdminGate(t, fakeRoles{}, "ghost@x.com")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, ran)
}

func TestRequireAdmin_NoClaimForbidden(t *testing.T) {
	rec, ran := runAdminGate(t, fakeRoles{"boss@x.com": "admin"}, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, ran)
}
