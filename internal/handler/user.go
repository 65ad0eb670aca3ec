package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/stayhub/hotel-booking-api/internal/model"
	"github.com/stayhub/hotel-booking-api/internal/repository"
)

// UserHandler serves the profile endpoints. Profile updates are full
// overwrites: the client always sends the complete profile and every
// mutable field is written back.
type UserHandler struct {
	Users *repository.UserRepo
}

func NewUserHandler(u *repository.UserRepo) *UserHandler {
	return &UserHandler{Users: u}
}

type profileReq struct {
	Email                  string  `json:"email"`
	FirstName              string  `json:"first_name"`
	LastName               string  `json:"last_name"`
	Phone                  *string `json:"phone"`
	IDType                 *string `json:"id_type"`
	IDNumber               *string `json:"id_number"`
	PreferredCurrency      string  `json:"preferred_currency"`
	PreferredLanguage      string  `json:"preferred_language"`
	NewsletterSubscription bool    `json:"newsletter_subscription"`
	SpecialOffers          bool    `json:"special_offers"`
	RoomPreferences        *string `json:"room_preferences"`
	DietaryRestrictions    *string `json:"dietary_restrictions"`
}

func (r profileReq) toModel() model.User {
	currency := strings.TrimSpace(r.PreferredCurrency)
	if currency == "" {
		currency = "USD"
	}
	language := strings.TrimSpace(r.PreferredLanguage)
	if language == "" {
		language = "english"
	}
	return model.User{
		Email:                  strings.ToLower(strings.TrimSpace(r.Email)),
		FirstName:              strings.TrimSpace(r.FirstName),
		LastName:               strings.TrimSpace(r.LastName),
		Phone:                  r.Phone,
		IDType:                 r.IDType,
		IDNumber:               r.IDNumber,
		PreferredCurrency:      currency,
		PreferredLanguage:      language,
		NewsletterSubscription: r.NewsletterSubscription,
		SpecialOffers:          r.SpecialOffers,
		RoomPreferences:        r.RoomPreferences,
		DietaryRestrictions:    r.DietaryRestrictions,
	}
}

// Create inserts a passwordless profile row. Such accounts can only
// sign in through the social flow.
func (h *UserHandler) Create(c echo.Context) error {
	var req profileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	u := req.toModel()
	if u.Email == "" || u.FirstName == "" || u.LastName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email, first_name and last_name are required"})
	}

	stored, err := h.Users.CreateProfile(c.Request().Context(), u)
	if err != nil {
		switch err {
		case repository.ErrEmailExists:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "user with this email already exists"})
		case repository.ErrSchemaMissing:
			return schemaMissing(c)
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	return c.JSON(http.StatusCreated, stored)
}

// Get returns one profile by id.
func (h *UserHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	u, err := h.Users.GetByID(c.Request().Context(), id)
	if err != nil {
		switch err {
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		case repository.ErrSchemaMissing:
			return schemaMissing(c)
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, u)
}

// Update overwrites the full profile of an existing user. The email
// is immutable and ignored when present in the body.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req profileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	u := req.toModel()
	if u.FirstName == "" || u.LastName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "first_name and last_name are required"})
	}

	stored, err := h.Users.UpdateProfile(c.Request().Context(), id, u)
	if err != nil {
		switch err {
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		case repository.ErrSchemaMissing:
			return schemaMissing(c)
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update user failed"})
	}
	return c.JSON(http.StatusOK, stored)
}
