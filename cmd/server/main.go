package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-order-backend/internal/config"
	"github.com/iliyamo/restaurant-order-backend/internal/database"
	"github.com/iliyamo/restaurant-order-backend/internal/handler"
	"github.com/iliyamo/restaurant-order-backend/internal/queue"
	"github.com/iliyamo/restaurant-order-backend/internal/repository"
	"github.com/iliyamo/restaurant-order-backend/internal/router"
	"github.com/iliyamo/restaurant-order-backend/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments use the environment
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	rdb := config.NewRedisClient() // nil disables cache and rate limiting

	users := repository.NewUserRepo(db)
	menu := repository.NewMenuRepo(db)
	reviews := repository.NewReviewRepo(db)
	carts := repository.NewCartRepo(db)
	payments := repository.NewPaymentRepo(db)
	bookings := repository.NewBookingRepo(db)
	stats := repository.NewStatsRepo(db)

	settlement := service.NewSettlement(payments, carts, queue.PublishPaymentReconcile)
	booking := service.NewBookings(bookings, queue.PublishBookingConfirmed)

	// Background repair: replays the cart deletion for settlements whose
	// second half failed.
	go queue.StartReconcileConsumer(carts)

	e := echo.New()
	router.Register(e, router.Deps{
		Cfg:      cfg,
		RDB:      rdb,
		Users:    users,
		Auth:     handler.NewAuthHandler(cfg),
		UsersH:   handler.NewUserHandler(users, cfg.BcryptCost),
		Menu:     handler.NewMenuHandler(menu),
		Reviews:  handler.NewReviewHandler(reviews),
		Carts:    handler.NewCartHandler(carts),
		Payments: handler.NewPaymentHandler(settlement, payments),
		Bookings: handler.NewBookingHandler(booking, bookings),
		Stats:    handler.NewStatsHandler(service.NewStats(stats)),
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
