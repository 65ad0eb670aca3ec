package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/stayhub/hotel-booking-api/internal/repository"
)

func newHotelHandler(t *testing.T) (*HotelHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	h := NewHotelHandler(
		repository.NewHotelRepo(db),
		repository.NewRoomRepo(db),
		repository.NewReviewRepo(db),
	)
	return h, mock, func() { db.Close() }
}

func getRequest(path string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

var hotelListCols = []string{
	"id", "name", "description", "location", "address", "city", "country",
	"rating", "total_reviews", "amenities", "couple_friendly", "image_url",
	"created_at", "updated_at", "min_price", "max_price",
}

func TestHotelListOK(t *testing.T) {
	h, mock, done := newHotelHandler(t)
	defer done()

	now := time.Now()
	mock.ExpectQuery("FROM hotels h").
		WillReturnRows(sqlmock.NewRows(hotelListCols).
			AddRow(1, "Grand Plaza Hotel", "Luxury", "Downtown", "123 Main Street", "New York", "USA",
				4.5, 1250, `["Pool","Spa"]`, true, "/images/hotels/grand-plaza.svg", now, now, 120.0, 250.0))

	c, rec := getRequest("/v1/hotels")
	assert.NoError(t, h.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Grand Plaza Hotel"`)
	assert.Contains(t, rec.Body.String(), `"min_price":120`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHotelListReportsMissingTables(t *testing.T) {
	h, mock, done := newHotelHandler(t)
	defer done()

	mock.ExpectQuery("FROM hotels h").
		WillReturnError(errors.New("Error 1146 (42S02): Table 'stayhub.hotels' doesn't exist"))

	c, rec := getRequest("/v1/hotels")
	assert.NoError(t, h.List(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"TABLES_NOT_FOUND"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHotelGetWithRoomsAndReviews(t *testing.T) {
	h, mock, done := newHotelHandler(t)
	defer done()

	now := time.Now()
	mock.ExpectQuery("FROM hotels h WHERE").
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows(hotelListCols[:14]).
			AddRow(1, "Grand Plaza Hotel", "Luxury", "Downtown", "123 Main Street", "New York", "USA",
				4.5, 1250, `["Pool"]`, true, nil, now, now))
	mock.ExpectQuery("FROM rooms WHERE hotel_id=").
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "hotel_id", "room_type", "description", "price_per_night", "max_occupancy",
			"amenities", "image_url", "total_rooms", "available_rooms", "created_at", "updated_at",
		}).AddRow(3, 1, "Standard Room", "Comfortable", 120.0, 2, `["TV"]`, nil, 20, 15, now, now))
	mock.ExpectQuery("FROM reviews rv").
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "hotel_id", "booking_id", "rating", "title", "comment",
			"first_name", "last_name", "created_at", "updated_at",
		}).AddRow(9, 1, 1, nil, 5, "Excellent stay!", "Great service", "Demo", "User", now, now))

	c, rec := getRequest("/v1/hotels/1")
	c.SetParamNames("id")
	c.SetParamValues("1")
	assert.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"room_type":"Standard Room"`)
	assert.Contains(t, rec.Body.String(), `"title":"Excellent stay!"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHotelGetReportsMissingRoomTables(t *testing.T) {
	h, mock, done := newHotelHandler(t)
	defer done()

	// The hotel row loads but the rooms table is missing; the detail
	// page reports the schema problem instead of a generic 500.
	now := time.Now()
	mock.ExpectQuery("FROM hotels h WHERE").
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows(hotelListCols[:14]).
			AddRow(1, "Grand Plaza Hotel", "Luxury", "Downtown", "123 Main Street", "New York", "USA",
				4.5, 1250, `["Pool"]`, true, nil, now, now))
	mock.ExpectQuery("FROM rooms WHERE hotel_id=").
		WithArgs(uint64(1)).
		WillReturnError(errors.New("Error 1146 (42S02): Table 'stayhub.rooms' doesn't exist"))

	c, rec := getRequest("/v1/hotels/1")
	c.SetParamNames("id")
	c.SetParamValues("1")
	assert.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"TABLES_NOT_FOUND"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHotelGetNotFound(t *testing.T) {
	h, mock, done := newHotelHandler(t)
	defer done()

	mock.ExpectQuery("FROM hotels h WHERE").
		WithArgs(uint64(77)).
		WillReturnRows(sqlmock.NewRows(hotelListCols[:14]))

	c, rec := getRequest("/v1/hotels/77")
	c.SetParamNames("id")
	c.SetParamValues("77")
	assert.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHotelListFilterParsingDefaults(t *testing.T) {
	c, _ := getRequest("/v1/hotels?minPrice=abc&coupleFriendly=yes")
	f := parseFilter(c)
	// Malformed numbers fall back to the full window; coupleFriendly
	// only counts for the literal "true".
	assert.Equal(t, 0.0, f.MinPrice)
	assert.Equal(t, 1000.0, f.MaxPrice)
	assert.False(t, f.CoupleFriendly)

	c, _ = getRequest("/v1/hotels?search=plaza&location=Downtown&minPrice=50&maxPrice=300&coupleFriendly=true")
	f = parseFilter(c)
	assert.Equal(t, "plaza", f.Search)
	assert.Equal(t, "Downtown", f.Location)
	assert.Equal(t, 50.0, f.MinPrice)
	assert.Equal(t, 300.0, f.MaxPrice)
	assert.True(t, f.CoupleFriendly)
}
