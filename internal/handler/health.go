package handler // declare the package name; contains HTTP handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4" // echo is the web framework used for this project
)

// Health returns a health-check handler used by load balancers and
// monitoring systems. It pings the database with a short timeout and
// reports the connection state alongside the service status.
func Health(db *sql.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		dbState := "connected"
		state := "ok"
		status := http.StatusOK
		if err := db.PingContext(ctx); err != nil {
			dbState = "unreachable"
			state = "degraded"
			status = http.StatusServiceUnavailable
		}
		return c.JSON(status, echo.Map{
			"status":    state,
			"database":  dbState,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
