package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-order-backend/internal/middleware"
	"github.com/iliyamo/restaurant-order-backend/internal/model"
	"github.com/iliyamo/restaurant-order-backend/internal/service"
)

// BookingLister is the read slice of the booking store used by the listing
// endpoint.  *repository.BookingRepo satisfies it.
type BookingLister interface {
	ListByEmail(ctx context.Context, email string) ([]model.Booking, error)
}

// BookingHandler bundles dependencies for the booking endpoints.
type BookingHandler struct {
	Bookings *service.Bookings
	Store    BookingLister
}

func NewBookingHandler(bookings *service.Bookings, store BookingLister) *BookingHandler {
	return &BookingHandler{Bookings: bookings, Store: store}
}

type bookingReq struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Date   string `json:"date"`
	Guests int    `json:"guests"`
}

// Create submits a booking for the authenticated caller.  The response
// carries both insert outcomes; when the confirmation half failed the
// booking is still committed and the caller retries only the confirmation.
func (h *BookingHandler) Create(c echo.Context) error {
	var req bookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	b := &model.Booking{
		Email:  middleware.ClaimEmail(c),
		Name:   req.Name,
		Phone:  req.Phone,
		Date:   req.Date,
		Guests: req.Guests,
	}
	res, err := h.Bookings.Book(ctx, b)
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": true, "message": "booking could not be recorded"})
	}
	return c.JSON(http.StatusOK, res)
}

// List returns the caller's bookings.
func (h *BookingHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bookings, err := h.Store.ListByEmail(ctx, middleware.ClaimEmail(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "query failed"})
	}
	if bookings == nil {
		bookings = []model.Booking{}
	}
	return c.JSON(http.StatusOK, bookings)
}
