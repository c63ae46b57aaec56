package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-order-backend/internal/middleware"
	"github.com/iliyamo/restaurant-order-backend/internal/model"
	"github.com/iliyamo/restaurant-order-backend/internal/repository"
	"github.com/iliyamo/restaurant-order-backend/internal/utils"
)

// UserStore is the slice of the identity store the user endpoints need.
// *repository.UserRepo satisfies it.  Taking an interface here keeps the
// registration contract (duplicate email is a soft success) testable
// without a database.
type UserStore interface {
	Create(ctx context.Context, email, name, passwordHash string) (int64, error)
	List(ctx context.Context) ([]model.User, error)
	RoleByEmail(ctx context.Context, email string) (string, error)
	PromoteToAdmin(ctx context.Context, id int64) error
}

// UserHandler bundles dependencies for the user endpoints.
type UserHandler struct {
	Users      UserStore
	BcryptCost int
}

func NewUserHandler(users UserStore, bcryptCost int) *UserHandler {
	return &UserHandler{Users: users, BcryptCost: bcryptCost}
}

type registerReq struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"` // optional; hashed when present
}

type userResp struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Register creates a user record.  Re-registering an existing email is a
// soft success by contract: the handler answers with an informational
// message and performs no second insert.
func (h *UserHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "invalid body"})
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "email required"})
	}

	var hash string
	if req.Password != "" {
		var err error
		hash, err = utils.HashPassword(req.Password, h.BcryptCost)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "create user failed"})
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Users.Create(ctx, email, req.Name, hash)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusOK, echo.Map{"message": "user already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "create user failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"insertedId": id})
}

// List returns every registered user.  Admin only (enforced by the route's
// gates).  Password hashes never leave the handler.
func (h *UserHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "query failed"})
	}
	out := make([]userResp, 0, len(users))
	for _, u := range users {
		out = append(out, userResp{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role, CreatedAt: u.CreatedAt})
	}
	return c.JSON(http.StatusOK, out)
}

// IsAdmin reports whether the given email has the admin role.  A caller may
// only ask about their own email; asking about anyone else's answers
// {admin:false} rather than leaking role information.
func (h *UserHandler) IsAdmin(c echo.Context) error {
	email := strings.ToLower(strings.TrimSpace(c.Param("email")))
	claim := middleware.ClaimEmail(c)
	if !strings.EqualFold(claim, email) {
		return c.JSON(http.StatusOK, echo.Map{"admin": false})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	role, err := h.Users.RoleByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusOK, echo.Map{"admin": false})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"admin": role == model.RoleAdmin})
}

// Promote grants the admin role to the user with the given id.  This is the
// only role mutation in the system and it is itself admin-gated, so a token
// holder can never self-promote.
func (h *UserHandler) Promote(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.PromoteToAdmin(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": true, "message": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"acknowledged": true, "modifiedCount": 1})
}
