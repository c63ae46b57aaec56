package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/restaurant-order-backend/internal/handler"
	"github.com/iliyamo/restaurant-order-backend/internal/middleware"
	"github.com/iliyamo/restaurant-order-backend/internal/model"
	"github.com/iliyamo/restaurant-order-backend/internal/repository"
	"github.com/iliyamo/restaurant-order-backend/internal/service"
)

type memPayments struct {
	inserted []*model.Payment
}

func (m *memPayments) Insert(_ context.Context, p *model.Payment) error {
	m.inserted = append(m.inserted, p)
	return nil
}

func (m *memPayments) GetByID(_ context.Context, id string) (*model.Payment, error) {
	for _, p := range m.inserted {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memPayments) ListByEmail(_ context.Context, email string) ([]model.Payment, error) {
	var out []model.Payment
	for _, p := range m.inserted {
		if p.Email == email {
			out = append(out, *p)
		}
	}
	return out, nil
}

type memCarts map[string]string // id -> owner

func (m memCarts) DeleteByIDsForEmail(_ context.Context, email string, ids []string) (int64, error) {
	var n int64
	for _, id := range ids {
		if m[id] == email {
			delete(m, id)
			n++
		}
	}
	return n, nil
}

func settleRequest(claimEmail, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/payments", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextEmailKey, claimEmail)
	return c, rec
}

func TestSettleEndpoint_Success(t *testing.T) {
	payments := &memPayments{}
	carts := memCarts{"c1": "u@x.com", "c2": "u@x.com"}
	h := handler.NewPaymentHandler(service.NewSettlement(payments, carts, nil), payments)

	c, rec := settleRequest("u@x.com",
		`{"email":"u@x.com","price":"7.00","cartItemIds":["c1","c2"],"menuItemIds":["m1","m2"]}`)
	require.NoError(t, h.Settle(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"insertedId"`)
	assert.Contains(t, rec.Body.String(), `"deletedCount":2`)
	assert.Empty(t, carts)
	require.Len(t, payments.inserted, 1)
}

func TestSettleEndpoint_EmailMismatchForbidden(t *testing.T) {
	payments := &memPayments{}
	carts := memCarts{"c1": "victim@x.com"}
	h := handler.NewPaymentHandler(service.NewSettlement(payments, carts, nil), payments)

	c, rec := settleRequest("attacker@x.com",
		`{"email":"victim@x.com","price":"7.00","cartItemIds":["c1"]}`)
	require.NoError(t, h.Settle(c))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error":true`)
	assert.Empty(t, payments.inserted, "no payment record on forbidden settlement")
	assert.Len(t, carts, 1)
}

func TestPaymentList_ScopedToClaim(t *testing.T) {
	payments := &memPayments{}
	_ = payments.Insert(context.Background(), &model.Payment{ID: "p1", Email: "u@x.com", Price: "7.00"})
	h := handler.NewPaymentHandler(service.NewSettlement(payments, memCarts{}, nil), payments)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/payments?email=other@x.com", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextEmailKey, "u@x.com")

	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
