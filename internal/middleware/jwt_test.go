package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/restaurant-order-backend/internal/middleware"
	"github.com/iliyamo/restaurant-order-backend/internal/utils"
)

const testSecret = "test-secret"

// runGate sends a request through RequireAuth into a probe handler and
// reports whether the handler ran.
func runGate(t *testing.T, authHeader string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handlerRan := false
	h := middleware.RequireAuth(testSecret)(func(c echo.Context) error {
		handlerRan = true
		return c.JSON(http.StatusOK, echo.Map{"email": middleware.ClaimEmail(c)})
	})
	require.NoError(t, h(c))
	return rec, handlerRan
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	rec, ran := runGate(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, ran, "handler must not run without a token")
	assert.Contains(t, rec.Body.String(), `"error":true`)
	assert.Contains(t, rec.Body.String(), "unauthorized access")
}

func TestRequireAuth_NotBearer(t *testing.T) {
	rec, ran := runGate(t, "Basic dXNlcjpwYXNz")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, ran)
}

func TestRequireAuth_GarbageToken(t *testing.T) {
	rec, ran := runGate(t, "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, ran)
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	at, err := utils.NewAccessToken(testSecret, "u@x.com", -1)
	require.NoError(t, err)

	rec, ran := runGate(t, "Bearer "+at.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, ran)
}

func TestRequireAuth_ValidTokenPassesClaim(t *testing.T) {
	at, err := utils.NewAccessToken(testSecret, "u@x.com", 60)
	require.NoError(t, err)

	rec, ran := runGate(t, "Bearer "+at.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, ran)
	assert.Contains(t, rec.Body.String(), "u@x.com")
}
