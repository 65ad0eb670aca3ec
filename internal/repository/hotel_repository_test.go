package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

var hotelRowCols = []string{
	"id", "name", "description", "location", "address", "city", "country",
	"rating", "total_reviews", "amenities", "couple_friendly", "image_url",
	"created_at", "updated_at", "min_price", "max_price",
}

func hotelRow(rows *sqlmock.Rows, id uint64, name, location string, rating, minPrice, maxPrice float64) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(id, name, "A hotel", location, "1 Main St", "New York", "USA",
		rating, 100, `["Free WiFi"]`, true, "/images/h.svg", now, now, minPrice, maxPrice)
}

func TestHotelListUnfilteredSkipsPriceWindow(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(hotelRowCols)
	hotelRow(rows, 1, "Grand Plaza Hotel", "Downtown", 4.5, 120, 250)
	hotelRow(rows, 2, "Seaside Resort", "Beachfront", 4.8, 200, 400)

	// No predicates: no WHERE, no HAVING, no args.
	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY h.id ORDER BY h.rating DESC")).
		WillReturnRows(rows)

	repo := NewHotelRepo(db)
	out, err := repo.List(context.Background(), HotelFilter{MinPrice: 0, MaxPrice: 1000})
	assert.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Equal(t, "Grand Plaza Hotel", out[0].Name)
	assert.Equal(t, 120.0, out[0].MinPrice)
	assert.Equal(t, []string{"Free WiFi"}, out[0].Amenities)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHotelListAppliesFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(hotelRowCols)
	hotelRow(rows, 1, "Grand Plaza Hotel", "Downtown", 4.5, 120, 250)

	// Price window filters on the minimum room price per hotel.
	mock.ExpectQuery(regexp.QuoteMeta("HAVING COALESCE(MIN(rm.price_per_night), 0) >= ?")).
		WithArgs("%Plaza%", "Downtown", 100.0, 300.0).
		WillReturnRows(rows)

	repo := NewHotelRepo(db)
	out, err := repo.List(context.Background(), HotelFilter{
		Search:         "Plaza",
		Location:       "Downtown",
		MinPrice:       100,
		MaxPrice:       300,
		CoupleFriendly: true,
	})
	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHotelListKeepsExplicitZeroMaxPrice(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	// An explicit zero upper bound is passed through unchanged, so
	// only zero-priced rooms can qualify.
	mock.ExpectQuery(regexp.QuoteMeta("HAVING COALESCE(MIN(rm.price_per_night), 0) >= ?")).
		WithArgs("%Plaza%", 0.0, 0.0).
		WillReturnRows(sqlmock.NewRows(hotelRowCols))

	repo := NewHotelRepo(db)
	out, err := repo.List(context.Background(), HotelFilter{Search: "Plaza", MinPrice: 0, MaxPrice: 0})
	assert.NoError(t, err)
	assert.Empty(t, out)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHotelListMissingSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM hotels h").
		WillReturnError(errors.New("Error 1146 (42S02): Table 'stayhub.hotels' doesn't exist"))

	repo := NewHotelRepo(db)
	_, err = repo.List(context.Background(), HotelFilter{MaxPrice: 1000})
	assert.ErrorIs(t, err, ErrSchemaMissing)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHotelGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM hotels h WHERE h.id=? LIMIT 1")).
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows(hotelRowCols[:14]))

	repo := NewHotelRepo(db)
	_, err = repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecodeAmenitiesEmptyAndNull(t *testing.T) {
	out, err := decodeAmenities(nullString(""))
	assert.NoError(t, err)
	assert.Empty(t, out)

	out, err = decodeAmenities(nullString(`["Pool","Spa"]`))
	assert.NoError(t, err)
	assert.Equal(t, []string{"Pool", "Spa"}, out)
}
