package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stayhub/hotel-booking-api/internal/repository"
)

// AdminHandler exposes the operational endpoints used while setting
// up or diagnosing an installation. They are intentionally simple
// and safe to call repeatedly.
type AdminHandler struct {
	Schema *repository.SchemaRepo
}

func NewAdminHandler(s *repository.SchemaRepo) *AdminHandler {
	return &AdminHandler{Schema: s}
}

// InitDB creates any missing tables and seeds demonstration data
// into empty ones, then reports per-table row counts.
func (h *AdminHandler) InitDB(c echo.Context) error {
	counts, err := h.Schema.Init(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database initialization failed", "detail": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "database initialized",
		"counts":  counts,
	})
}

// DBStatus reports which tables exist, which required ones are
// missing, and row counts when the schema is complete.
func (h *AdminHandler) DBStatus(c echo.Context) error {
	st, err := h.Schema.Status(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "status query failed", "detail": err.Error()})
	}
	return c.JSON(http.StatusOK, st)
}

// RepairSequences realigns every table's auto-increment counter with
// its current max id and reports the next id per table.
func (h *AdminHandler) RepairSequences(c echo.Context) error {
	next, err := h.Schema.RepairSequences(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "sequence repair failed", "detail": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "sequences repaired",
		"next_id": next,
	})
}
