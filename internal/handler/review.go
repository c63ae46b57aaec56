package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-order-backend/internal/middleware"
	"github.com/iliyamo/restaurant-order-backend/internal/model"
	"github.com/iliyamo/restaurant-order-backend/internal/repository"
)

// ReviewHandler bundles dependencies for the review endpoints.
type ReviewHandler struct {
	Reviews *repository.ReviewRepo
}

func NewReviewHandler(reviews *repository.ReviewRepo) *ReviewHandler {
	return &ReviewHandler{Reviews: reviews}
}

type reviewReq struct {
	Name    string `json:"name"`
	Rating  int    `json:"rating"`
	Details string `json:"details"`
}

// List returns all reviews.  Public and cached.
func (h *ReviewHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	reviews, err := h.Reviews.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "query failed"})
	}
	if reviews == nil {
		reviews = []model.Review{}
	}
	return c.JSON(http.StatusOK, reviews)
}

// Create adds a review owned by the authenticated caller; the email always
// comes from the claim, never from the body.
func (h *ReviewHandler) Create(c echo.Context) error {
	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rv := &model.Review{Email: middleware.ClaimEmail(c), Name: req.Name, Rating: req.Rating, Details: req.Details}
	id, err := h.Reviews.Create(ctx, rv)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "create review failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"insertedId": id})
}
