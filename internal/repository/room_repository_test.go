package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestDecrementAvailabilityTxConsumesUnit(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE rooms SET available_rooms = available_rooms - 1 WHERE id=? AND available_rooms > 0")).
		WithArgs(uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.BeginTx(context.Background(), nil)
	assert.NoError(t, err)

	repo := NewRoomRepo(db)
	assert.NoError(t, repo.DecrementAvailabilityTx(context.Background(), tx, 3))
	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecrementAvailabilityTxSoldOut(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	// Counter already at zero: the guarded update affects no rows.
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE rooms SET available_rooms = available_rooms - 1 WHERE id=? AND available_rooms > 0")).
		WithArgs(uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	tx, err := db.BeginTx(context.Background(), nil)
	assert.NoError(t, err)

	repo := NewRoomRepo(db)
	err = repo.DecrementAvailabilityTx(context.Background(), tx, 3)
	assert.ErrorIs(t, err, ErrRoomUnavailable)
	assert.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetForBookingTxLocksRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT hotel_id, price_per_night, available_rooms FROM rooms WHERE id=? FOR UPDATE")).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"hotel_id", "price_per_night", "available_rooms"}).
			AddRow(2, 120.0, 15))
	mock.ExpectCommit()

	tx, err := db.BeginTx(context.Background(), nil)
	assert.NoError(t, err)

	repo := NewRoomRepo(db)
	hotelID, price, available, err := repo.GetForBookingTx(context.Background(), tx, 5)
	assert.NoError(t, err)
	assert.Equal(t, uint64(2), hotelID)
	assert.Equal(t, 120.0, price)
	assert.Equal(t, uint32(15), available)
	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetForBookingTxUnknownRoom(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM rooms WHERE id=? FOR UPDATE")).
		WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"hotel_id", "price_per_night", "available_rooms"}))
	mock.ExpectRollback()

	tx, err := db.BeginTx(context.Background(), nil)
	assert.NoError(t, err)

	repo := NewRoomRepo(db)
	_, _, _, err = repo.GetForBookingTx(context.Background(), tx, 99)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}
