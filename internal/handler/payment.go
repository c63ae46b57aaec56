package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-order-backend/internal/middleware"
	"github.com/iliyamo/restaurant-order-backend/internal/model"
	"github.com/iliyamo/restaurant-order-backend/internal/repository"
	"github.com/iliyamo/restaurant-order-backend/internal/service"
)

// PaymentReader is the read slice of the payment store used by the history
// and detail endpoints.  *repository.PaymentRepo satisfies it.
type PaymentReader interface {
	ListByEmail(ctx context.Context, email string) ([]model.Payment, error)
	GetByID(ctx context.Context, id string) (*model.Payment, error)
}

// PaymentHandler bundles dependencies for the settlement endpoints.
type PaymentHandler struct {
	Settlement *service.Settlement
	Payments   PaymentReader
}

func NewPaymentHandler(settlement *service.Settlement, payments PaymentReader) *PaymentHandler {
	return &PaymentHandler{Settlement: settlement, Payments: payments}
}

// Settle converts the caller's cart contents into a payment record.  The
// submitted email must equal the verified claim; a mismatch is 403 with no
// payment created.  Callers should put a bounded timeout around this call
// and supply their own idempotency key: two concurrent settlements over the
// same cart ids can both record a payment (documented race).
func (h *PaymentHandler) Settle(c echo.Context) error {
	var in service.SettleInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	res, err := h.Settlement.Settle(ctx, middleware.ClaimEmail(c), in)
	if err != nil {
		if errors.Is(err, repository.ErrForbidden) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": true, "message": "forbidden access"})
		}
		// The insert half failed; nothing was written.
		return c.JSON(http.StatusBadGateway, echo.Map{"error": true, "message": "payment could not be recorded"})
	}
	return c.JSON(http.StatusOK, res)
}

// List returns the caller's payment history.  The optional email query must
// match the claim.
func (h *PaymentHandler) List(c echo.Context) error {
	claim := middleware.ClaimEmail(c)
	email := strings.ToLower(strings.TrimSpace(c.QueryParam("email")))
	if email == "" {
		email = claim
	}
	if !strings.EqualFold(email, claim) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": true, "message": "forbidden access"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	payments, err := h.Payments.ListByEmail(ctx, email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "query failed"})
	}
	if payments == nil {
		payments = []model.Payment{}
	}
	return c.JSON(http.StatusOK, payments)
}

// Get returns one payment including its authoritative cart-item id set,
// which is what a manual reconciliation replays the deletion from.  Owner
// only.
func (h *PaymentHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Payments.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": true, "message": "payment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "query failed"})
	}
	if !strings.EqualFold(p.Email, middleware.ClaimEmail(c)) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": true, "message": "forbidden access"})
	}
	return c.JSON(http.StatusOK, p)
}
