package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/stayhub/hotel-booking-api/internal/config"     // Internal config loader
	"github.com/stayhub/hotel-booking-api/internal/database"   // MySQL connection helper
	"github.com/stayhub/hotel-booking-api/internal/handler"    // HTTP handlers
	"github.com/stayhub/hotel-booking-api/internal/middleware" // Cache and rate-limit middleware
	"github.com/stayhub/hotel-booking-api/internal/queue"      // Booking event consumer
	"github.com/stayhub/hotel-booking-api/internal/repository" // DB repositories
	"github.com/stayhub/hotel-booking-api/internal/router"     // Route registration
)

func main() {
	// Load .env if present; real deployments set variables directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	defer db.Close()

	// Repositories
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	hotels := repository.NewHotelRepo(db)
	rooms := repository.NewRoomRepo(db)
	reviews := repository.NewReviewRepo(db)
	bookings := repository.NewBookingRepo(db)
	schema := repository.NewSchemaRepo(db)

	// Handlers
	authH := handler.NewAuthHandler(cfg, users, tokens)
	hotelH := handler.NewHotelHandler(hotels, rooms, reviews)
	bookingH := handler.NewBookingHandler(cfg, bookings, rooms, users, hotels)
	userH := handler.NewUserHandler(users)
	adminH := handler.NewAdminHandler(schema)

	// Redis backs the response cache and the rate limiter. A nil
	// client disables both without failing startup.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; response cache and rate limiting disabled")
	}
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e, db)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterHotels(e, hotelH, cacheMW)
	router.RegisterBookings(e, bookingH)
	router.RegisterUsers(e, userH)
	router.RegisterAdmin(e, adminH)

	// Consume booking.confirmed events in the background; the
	// consumer reconnects on its own if the broker goes away.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s demo=%v)", addr, cfg.Env, cfg.DemoMode)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
