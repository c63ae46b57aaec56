package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/restaurant-order-backend/internal/config"
	"github.com/iliyamo/restaurant-order-backend/internal/handler"
	"github.com/iliyamo/restaurant-order-backend/internal/middleware"
	"github.com/iliyamo/restaurant-order-backend/internal/repository"
)

// Deps bundles everything the route table needs.  The gates are built here,
// once, from injected dependencies; handlers never reach for ambient state.
type Deps struct {
	Cfg      config.Config
	RDB      *redis.Client // may be nil; cache and rate limit degrade to no-ops
	Users    *repository.UserRepo
	Auth     *handler.AuthHandler
	UsersH   *handler.UserHandler
	Menu     *handler.MenuHandler
	Reviews  *handler.ReviewHandler
	Carts    *handler.CartHandler
	Payments *handler.PaymentHandler
	Bookings *handler.BookingHandler
	Stats    *handler.StatsHandler
}

// Register wires the full route table.  Routes fall into three trust
// levels, expressed as explicit middleware composition rather than hidden
// control flow:
//
//	public         – no gate
//	authenticated  – RequireAuth
//	administrative – RequireAuth then RequireAdmin
func Register(e *echo.Echo, d Deps) {
	rateLimit := middleware.RateLimit(config.LoadRateLimitConfig(), d.RDB)
	cached := middleware.CacheGET(config.LoadCacheConfig(), d.RDB)
	authGate := middleware.RequireAuth(d.Cfg.JWTSecret)
	adminGate := middleware.RequireAdmin(d.Users)

	e.GET("/healthz", handler.Health)

	// Public surface.  Token issuance is rate limited; the heavy public
	// reads are cached.
	e.POST("/v1/auth/token", d.Auth.IssueToken, rateLimit)
	e.POST("/v1/users", d.UsersH.Register)
	e.GET("/v1/menu", d.Menu.List, cached)
	e.GET("/v1/reviews", d.Reviews.List, cached)

	// Routes that require a valid identity but no particular role.
	auth := e.Group("/v1")
	auth.Use(authGate)
	auth.GET("/users/admin/:email", d.UsersH.IsAdmin)
	auth.GET("/carts", d.Carts.List)
	auth.POST("/carts", d.Carts.Add)
	auth.DELETE("/carts/:id", d.Carts.Remove)
	auth.POST("/reviews", d.Reviews.Create)
	auth.POST("/payments", d.Payments.Settle)
	auth.GET("/payments", d.Payments.List)
	auth.GET("/payments/:id", d.Payments.Get)
	auth.POST("/bookings", d.Bookings.Create)
	auth.GET("/bookings", d.Bookings.List)

	// Administrative surface: both gates, in order.
	admin := e.Group("/v1")
	admin.Use(authGate, adminGate)
	admin.GET("/users", d.UsersH.List)
	admin.PATCH("/users/admin/:id", d.UsersH.Promote)
	admin.POST("/menu", d.Menu.Create)
	admin.DELETE("/menu/:id", d.Menu.Delete)
	admin.GET("/admin/stats", d.Stats.Summary, cached)
	admin.GET("/admin/order-stats", d.Stats.OrderStats, cached)
}
