package repository

import (
	"context"
	"database/sql"

	"github.com/stayhub/hotel-booking-api/internal/model"
)

// RoomRepo provides operations over the rooms table, including the
// guarded availability decrement that booking creation relies on.
type RoomRepo struct{ DB *sql.DB }

func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{DB: db} }

const roomColumns = `id, hotel_id, room_type, description, price_per_night, max_occupancy,
	amenities, image_url, total_rooms, available_rooms, created_at, updated_at`

func scanRoom(row interface{ Scan(...any) error }) (model.Room, error) {
	var rm model.Room
	var amenities sql.NullString
	err := row.Scan(&rm.ID, &rm.HotelID, &rm.RoomType, &rm.Description, &rm.PricePerNight,
		&rm.MaxOccupancy, &amenities, &rm.ImageURL, &rm.TotalRooms, &rm.AvailableRooms,
		&rm.CreatedAt, &rm.UpdatedAt)
	if err != nil {
		return model.Room{}, err
	}
	list, err := decodeAmenities(amenities)
	if err != nil {
		return model.Room{}, err
	}
	rm.Amenities = list
	return rm, nil
}

// ListByHotel returns every room of a hotel, cheapest first.
func (r *RoomRepo) ListByHotel(ctx context.Context, hotelID uint64) ([]model.Room, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+roomColumns+" FROM rooms WHERE hotel_id=? ORDER BY price_per_night", hotelID)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	out := make([]model.Room, 0)
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a single room row.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (model.Room, error) {
	rm, err := scanRoom(r.DB.QueryRowContext(ctx,
		"SELECT "+roomColumns+" FROM rooms WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return model.Room{}, ErrNotFound
	}
	if err != nil {
		return model.Room{}, translateErr(err)
	}
	return rm, nil
}

// GetForBookingTx loads the room fields needed to validate and
// price a booking, inside the booking transaction. FOR UPDATE
// serializes concurrent bookings of the same room on this row.
func (r *RoomRepo) GetForBookingTx(ctx context.Context, tx *sql.Tx, id uint64) (hotelID uint64, pricePerNight float64, available uint32, err error) {
	err = tx.QueryRowContext(ctx,
		"SELECT hotel_id, price_per_night, available_rooms FROM rooms WHERE id=? FOR UPDATE",
		id).Scan(&hotelID, &pricePerNight, &available)
	if err == sql.ErrNoRows {
		return 0, 0, 0, ErrNotFound
	}
	if err != nil {
		return 0, 0, 0, translateErr(err)
	}
	return hotelID, pricePerNight, available, nil
}

// DecrementAvailabilityTx atomically consumes one available unit.
// The WHERE guard makes the check and the decrement a single
// conditional update: when the counter is already zero the
// statement affects no rows and ErrRoomUnavailable is returned, so
// two requests racing for the last unit can never both succeed and
// the counter can never go negative.
func (r *RoomRepo) DecrementAvailabilityTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE rooms SET available_rooms = available_rooms - 1 WHERE id=? AND available_rooms > 0",
		id)
	if err != nil {
		return translateErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRoomUnavailable
	}
	return nil
}
