package handler

import (
	"context"
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/stayhub/hotel-booking-api/internal/config"
	"github.com/stayhub/hotel-booking-api/internal/model"
	"github.com/stayhub/hotel-booking-api/internal/queue"
	"github.com/stayhub/hotel-booking-api/internal/repository"
	queue_publisher "github.com/stayhub/hotel-booking-api/internal/service"
)

// demoUserID is the id of the seeded demo account that bookings fall
// back to when demo mode is enabled and the requested user is unknown.
const demoUserID = 1

// dateLayout is the wire format for check-in/check-out dates.
const dateLayout = "2006-01-02"

// priceTolerance absorbs float rounding when comparing the client's
// total against the server-side recomputation.
const priceTolerance = 0.01

// BookingHandler owns booking creation and the booking history
// listing. Creation opens a transaction spanning the availability
// decrement and the booking insert so the two writes are atomic.
type BookingHandler struct {
	Cfg      config.Config
	Bookings *repository.BookingRepo
	Rooms    *repository.RoomRepo
	Users    *repository.UserRepo
	Hotels   *repository.HotelRepo
}

func NewBookingHandler(cfg config.Config, b *repository.BookingRepo, r *repository.RoomRepo, u *repository.UserRepo, h *repository.HotelRepo) *BookingHandler {
	return &BookingHandler{Cfg: cfg, Bookings: b, Rooms: r, Users: u, Hotels: h}
}

type createBookingReq struct {
	UserID          uint64  `json:"user_id"`
	HotelID         uint64  `json:"hotel_id"`
	RoomID          uint64  `json:"room_id"`
	CheckInDate     string  `json:"check_in_date"`
	CheckOutDate    string  `json:"check_out_date"`
	Guests          uint32  `json:"guests"`
	TotalPrice      float64 `json:"total_price"`
	SpecialRequests string  `json:"special_requests"`
}

// Create validates and stores a booking. The flow inside one
// transaction: lock the room row, verify it belongs to the requested
// hotel, recompute the price server-side, consume one available unit
// with a guarded decrement, insert the booking as confirmed. A race
// for the last unit surfaces as 409 and rolls everything back.
func (h *BookingHandler) Create(c echo.Context) error {
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.UserID == 0 || req.HotelID == 0 || req.RoomID == 0 ||
		req.CheckInDate == "" || req.CheckOutDate == "" || req.Guests == 0 || req.TotalPrice <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id, hotel_id, room_id, check_in_date, check_out_date, guests and total_price are required"})
	}
	checkIn, err := time.Parse(dateLayout, req.CheckInDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in_date must be YYYY-MM-DD"})
	}
	checkOut, err := time.Parse(dateLayout, req.CheckOutDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out_date must be YYYY-MM-DD"})
	}
	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	if nights <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out_date must be after check_in_date"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	tx, err := h.Bookings.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin transaction failed"})
	}
	defer func() { _ = tx.Rollback() }()

	userID := req.UserID
	exists, err := h.Users.ExistsTx(ctx, tx, userID)
	if err != nil {
		return h.writeRepoError(c, err)
	}
	if !exists {
		if !h.Cfg.DemoMode {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		// Demo installations accept bookings from throwaway sessions by
		// rerouting them to the seeded demo account.
		if err := h.Users.EnsureDemoUserTx(ctx, tx, demoUserID); err != nil {
			return h.writeRepoError(c, err)
		}
		userID = demoUserID
	}

	hotelID, pricePerNight, _, err := h.Rooms.GetForBookingTx(ctx, tx, req.RoomID)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return h.writeRepoError(c, err)
	}
	if hotelID != req.HotelID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room does not belong to the specified hotel"})
	}

	// The client's total is advisory; the nightly rate stored on the
	// room is authoritative.
	expected := float64(nights) * pricePerNight
	if math.Abs(req.TotalPrice-expected) > priceTolerance {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":          "total_price does not match the room rate",
			"expected_total": expected,
		})
	}

	if err := h.Rooms.DecrementAvailabilityTx(ctx, tx, req.RoomID); err != nil {
		if err == repository.ErrRoomUnavailable {
			return c.JSON(http.StatusConflict, echo.Map{"error": "no rooms available"})
		}
		return h.writeRepoError(c, err)
	}

	booking := model.Booking{
		UserID:          userID,
		HotelID:         req.HotelID,
		RoomID:          req.RoomID,
		CheckInDate:     req.CheckInDate,
		CheckOutDate:    req.CheckOutDate,
		Guests:          req.Guests,
		TotalPrice:      expected,
		Status:          "confirmed",
		SpecialRequests: req.SpecialRequests,
	}
	if err := h.Bookings.CreateTx(ctx, tx, &booking); err != nil {
		return h.writeRepoError(c, err)
	}

	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}

	go h.publishConfirmed(booking)

	return c.JSON(http.StatusCreated, echo.Map{"booking": booking})
}

// publishConfirmed emits the booking.confirmed event after commit.
// Failures are logged and dropped; the booking already succeeded.
func (h *BookingHandler) publishConfirmed(b model.Booking) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ev := queue.BookingConfirmedEvent{
		BookingID:    b.ID,
		UserID:       b.UserID,
		HotelID:      b.HotelID,
		RoomID:       b.RoomID,
		CheckInDate:  b.CheckInDate,
		CheckOutDate: b.CheckOutDate,
		Guests:       b.Guests,
		TotalPrice:   b.TotalPrice,
		ConfirmedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	if hotel, err := h.Hotels.GetByID(ctx, b.HotelID); err == nil {
		ev.HotelName = hotel.Name
	}
	if room, err := h.Rooms.GetByID(ctx, b.RoomID); err == nil {
		ev.RoomType = room.RoomType
	}
	if err := queue_publisher.PublishBookingConfirmed(ctx, ev); err != nil {
		log.Printf("booking: publish confirmed event failed: %v", err)
	}
}

// ListByUser returns the booking history for a user, newest first,
// joined with hotel and room display fields.
func (h *BookingHandler) ListByUser(c echo.Context) error {
	raw := c.QueryParam("userId")
	if raw == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "userId query parameter is required"})
	}
	userID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid userId"})
	}

	bookings, err := h.Bookings.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return h.writeRepoError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": bookings})
}

// writeRepoError maps repository sentinels that can surface from any
// booking query onto their HTTP responses.
func (h *BookingHandler) writeRepoError(c echo.Context, err error) error {
	switch err {
	case repository.ErrSchemaMissing:
		return schemaMissing(c)
	case repository.ErrConstraint:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "booking references missing data, run database initialization"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
}
