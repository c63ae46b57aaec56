package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-order-backend/internal/model"
	"github.com/iliyamo/restaurant-order-backend/internal/repository"
)

// MenuHandler bundles dependencies for the menu endpoints.  The menu is a
// plain collection: list for everyone, insert/delete for admins.
type MenuHandler struct {
	Menu *repository.MenuRepo
}

func NewMenuHandler(menu *repository.MenuRepo) *MenuHandler { return &MenuHandler{Menu: menu} }

type menuItemReq struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Recipe   string `json:"recipe"`
	Image    string `json:"image"`
	Price    string `json:"price"`
}

// List returns the whole menu.  Public and cached.
func (h *MenuHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Menu.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "query failed"})
	}
	if items == nil {
		items = []model.MenuItem{}
	}
	return c.JSON(http.StatusOK, items)
}

// Create adds a menu item.  Admin only.
func (h *MenuHandler) Create(c echo.Context) error {
	var req menuItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "invalid body"})
	}
	if req.Name == "" || req.Category == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "name/category required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	item := &model.MenuItem{Name: req.Name, Category: req.Category, Recipe: req.Recipe, Image: req.Image, Price: req.Price}
	id, err := h.Menu.Create(ctx, item)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "create menu item failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"insertedId": id})
}

// Delete removes a menu item by id.  Admin only.
func (h *MenuHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Menu.Delete(ctx, c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": true, "message": "menu item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"deletedCount": 1})
}
