package router // package router defines how HTTP routes are registered for the API

import (
	"database/sql"

	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/stayhub/hotel-booking-api/internal/handler"    // import the handlers that implement business logic
	"github.com/stayhub/hotel-booking-api/internal/middleware" // import middleware for JWT authentication and caching
)

// RegisterRoutes registers routes that do not require authentication
// on the provided Echo instance. Currently it exposes only the
// health check, which reports the database connection state.
func RegisterRoutes(e *echo.Echo, db *sql.DB) {
	e.GET("/healthz", handler.Health(db))
}

// RegisterAuth registers all authentication-related routes and applies
// the necessary middleware. Unauthenticated operations live under
// /v1/auth, while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Session handshakes: register, credential login, social sign-in,
	// refresh rotation and logout all live under /v1/auth and need no
	// existing session.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/social", a.Social)
	g.POST("/refresh", a.Refresh)
	// Logout accepts a JSON body containing a `refresh_token` and
	// invalidates that token. A valid token yields 204.
	g.POST("/logout", a.Logout)

	// Handlers registered on this group execute the JWTAuth middleware
	// before being invoked. Logout-all needs the authenticated identity
	// rather than a refresh token, so it lives here.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	auth.POST("/auth/logout-all", a.LogoutAll)
}

// RegisterHotels registers the public hotel browsing endpoints. The
// read routes are wrapped in the Redis response cache so repeated
// searches with identical filters are served without touching MySQL.
// Hotel creation is uncached.
func RegisterHotels(e *echo.Echo, h *handler.HotelHandler, cache echo.MiddlewareFunc) {
	e.GET("/v1/hotels", h.List, cache)
	e.GET("/v1/hotels/:id", h.Get, cache)
	e.POST("/v1/hotels", h.Create)
}

// RegisterBookings registers booking creation and the booking
// history listing.
func RegisterBookings(e *echo.Echo, b *handler.BookingHandler) {
	e.POST("/v1/bookings", b.Create)
	e.GET("/v1/bookings", b.ListByUser)
}

// RegisterUsers registers the profile endpoints.
func RegisterUsers(e *echo.Echo, u *handler.UserHandler) {
	e.POST("/v1/users", u.Create)
	e.GET("/v1/users/:id", u.Get)
	e.PUT("/v1/users/:id", u.Update)
}

// RegisterAdmin registers the operational endpoints for schema
// setup and diagnostics.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler) {
	g := e.Group("/v1/admin")
	g.POST("/init-db", a.InitDB)
	g.GET("/db-status", a.DBStatus)
	g.POST("/repair-sequences", a.RepairSequences)
}
