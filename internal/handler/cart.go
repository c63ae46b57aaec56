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
)

// CartStore is the slice of the cart store the cart endpoints need.
// *repository.CartRepo satisfies it.
type CartStore interface {
	ListByEmail(ctx context.Context, email string) ([]model.CartEntry, error)
	Create(ctx context.Context, e *model.CartEntry) (string, error)
	DeleteByID(ctx context.Context, id string) error
}

// CartHandler bundles dependencies for the cart endpoints.  Carts are
// scoped to the owning email: reads require the query email to match the
// verified claim, and writes take the owner from the claim.
type CartHandler struct {
	Carts CartStore
}

func NewCartHandler(carts CartStore) *CartHandler { return &CartHandler{Carts: carts} }

type cartAddReq struct {
	MenuItemID string `json:"menuItemId"`
}

// List returns the cart entries for the email given in the query string.
// A missing email answers an empty list; an email that differs from the
// caller's claim is forbidden.
func (h *CartHandler) List(c echo.Context) error {
	email := strings.ToLower(strings.TrimSpace(c.QueryParam("email")))
	if email == "" {
		return c.JSON(http.StatusOK, []model.CartEntry{})
	}
	if !strings.EqualFold(email, middleware.ClaimEmail(c)) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": true, "message": "forbidden access"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	entries, err := h.Carts.ListByEmail(ctx, email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "query failed"})
	}
	if entries == nil {
		entries = []model.CartEntry{}
	}
	return c.JSON(http.StatusOK, entries)
}

// Add places a menu item in the caller's cart.
func (h *CartHandler) Add(c echo.Context) error {
	var req cartAddReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "invalid body"})
	}
	if req.MenuItemID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "menuItemId required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	entry := &model.CartEntry{Email: middleware.ClaimEmail(c), MenuItemID: req.MenuItemID}
	id, err := h.Carts.Create(ctx, entry)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "add to cart failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"insertedId": id})
}

// Remove deletes one cart entry by id.
func (h *CartHandler) Remove(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Carts.DeleteByID(ctx, c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": true, "message": "cart entry not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"deletedCount": 1})
}
