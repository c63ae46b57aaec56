package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-order-backend/internal/service"
)

// StatsHandler exposes the admin-only aggregation endpoints.  Both routes
// sit behind the authentication and authorization gates and behind the
// response cache: the aggregates scan whole collections and change slowly.
type StatsHandler struct {
	Stats *service.Stats
}

func NewStatsHandler(stats *service.Stats) *StatsHandler { return &StatsHandler{Stats: stats} }

// Summary returns {users, products, orders, revenue}.
func (h *StatsHandler) Summary(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	sum, err := h.Stats.Summary(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "aggregation failed"})
	}
	return c.JSON(http.StatusOK, sum)
}

// OrderStats returns the per-category breakdown of purchased menu items.
func (h *StatsHandler) OrderStats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	stats, err := h.Stats.CategoryBreakdown(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "aggregation failed"})
	}
	return c.JSON(http.StatusOK, stats)
}
