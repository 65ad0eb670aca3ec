// This file defines handlers for the public hotel browsing API. These
// routes allow unauthenticated users to search hotels and inspect a
// hotel's rooms and reviews.
package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/stayhub/hotel-booking-api/internal/model"
	"github.com/stayhub/hotel-booking-api/internal/repository"
)

// HotelHandler aggregates repositories needed for hotel browsing.
type HotelHandler struct {
	Hotels  *repository.HotelRepo
	Rooms   *repository.RoomRepo
	Reviews *repository.ReviewRepo
}

func NewHotelHandler(h *repository.HotelRepo, r *repository.RoomRepo, rv *repository.ReviewRepo) *HotelHandler {
	return &HotelHandler{Hotels: h, Rooms: r, Reviews: rv}
}

// schemaMissing writes the 404 response that tells the client the
// database tables have not been created yet, with a stable code the
// frontend keys on to offer initialization.
func schemaMissing(c echo.Context) error {
	return c.JSON(http.StatusNotFound, echo.Map{
		"error": "database tables not found, run database initialization",
		"code":  "TABLES_NOT_FOUND",
	})
}

// writeHotelError maps repository sentinels from the browsing
// queries onto their HTTP responses.
func writeHotelError(c echo.Context, err error) error {
	if err == repository.ErrSchemaMissing {
		return schemaMissing(c)
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
}

// parseFilter reads the listing query parameters. Absent or
// malformed numbers fall back to the full 0..1000 price window.
func parseFilter(c echo.Context) repository.HotelFilter {
	f := repository.HotelFilter{
		Search:   strings.TrimSpace(c.QueryParam("search")),
		Location: strings.TrimSpace(c.QueryParam("location")),
		MinPrice: 0,
		MaxPrice: 1000,
	}
	if v := c.QueryParam("minPrice"); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil && n >= 0 {
			f.MinPrice = n
		}
	}
	if v := c.QueryParam("maxPrice"); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil && n >= 0 {
			f.MaxPrice = n
		}
	}
	f.CoupleFriendly = c.QueryParam("coupleFriendly") == "true"
	return f
}

// List returns hotels matching the query filters, highest rated
// first, each with its derived min/max nightly price.
func (h *HotelHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	hotels, err := h.Hotels.List(ctx, parseFilter(c))
	if err != nil {
		return writeHotelError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"hotels": hotels})
}

// hotelDetail is the detail-page payload: the hotel row plus its
// rooms (cheapest first) and reviews (newest first).
type hotelDetail struct {
	model.Hotel
	Rooms   []model.Room              `json:"rooms"`
	Reviews []repository.ReviewDetail `json:"reviews"`
}

// Get returns one hotel with its rooms and reviews.
func (h *HotelHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	hotel, err := h.Hotels.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return writeHotelError(c, err)
	}
	rooms, err := h.Rooms.ListByHotel(ctx, id)
	if err != nil {
		return writeHotelError(c, err)
	}
	reviews, err := h.Reviews.ListByHotel(ctx, id)
	if err != nil {
		return writeHotelError(c, err)
	}
	return c.JSON(http.StatusOK, hotelDetail{Hotel: hotel, Rooms: rooms, Reviews: reviews})
}

type createHotelReq struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Location       string   `json:"location"`
	Address        string   `json:"address"`
	City           string   `json:"city"`
	Country        string   `json:"country"`
	Amenities      []string `json:"amenities"`
	CoupleFriendly bool     `json:"couple_friendly"`
	ImageURL       string   `json:"image_url"`
}

// Create inserts a hotel. Name and location are mandatory; the
// rating starts at zero until reviews are seeded.
func (h *HotelHandler) Create(c echo.Context) error {
	var req createHotelReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Location = strings.TrimSpace(req.Location)
	if req.Name == "" || req.Location == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and location are required"})
	}

	toPtr := func(s string) *string {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		return &s
	}
	hotel, err := h.Hotels.Create(c.Request().Context(), model.Hotel{
		Name:           req.Name,
		Description:    toPtr(req.Description),
		Location:       req.Location,
		Address:        toPtr(req.Address),
		City:           toPtr(req.City),
		Country:        toPtr(req.Country),
		Amenities:      req.Amenities,
		CoupleFriendly: req.CoupleFriendly,
		ImageURL:       toPtr(req.ImageURL),
	})
	if err != nil {
		if err == repository.ErrSchemaMissing {
			return schemaMissing(c)
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create hotel failed"})
	}
	return c.JSON(http.StatusCreated, hotel)
}
