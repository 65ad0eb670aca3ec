package repository

import (
	"context"
	"database/sql"

	"github.com/stayhub/hotel-booking-api/internal/model"
)

// BookingRepo provides CRUD operations for bookings. Creation
// always happens inside a transaction shared with the room
// availability decrement so the two writes succeed or fail
// together. All timestamp fields are stored in UTC.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle so handlers can open the
// transaction that spans booking insert and availability update.
func (r *BookingRepo) DB() *sql.DB { return r.db }

// CreateTx inserts a new booking within the scope of an existing
// transaction. It populates the generated ID and the row defaults
// on the provided record. The caller must commit or rollback the
// transaction. Status should already be set ("confirmed").
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `INSERT INTO bookings
		(user_id, hotel_id, room_id, check_in_date, check_out_date, guests, total_price, special_requests, status)
		VALUES (?,?,?,?,?,?,?,?,?)`
	result, err := tx.ExecContext(ctx, q,
		b.UserID, b.HotelID, b.RoomID, b.CheckInDate, b.CheckOutDate,
		b.Guests, b.TotalPrice, b.SpecialRequests, b.Status)
	if err != nil {
		return translateErr(err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	// Query back the full row to populate timestamps and defaults
	const sel = `SELECT id, user_id, hotel_id, room_id,
		DATE_FORMAT(check_in_date, '%Y-%m-%d'), DATE_FORMAT(check_out_date, '%Y-%m-%d'),
		guests, total_price, status, COALESCE(special_requests, ''), created_at, updated_at
		FROM bookings WHERE id = ?`
	err = tx.QueryRowContext(ctx, sel, b.ID).Scan(
		&b.ID, &b.UserID, &b.HotelID, &b.RoomID, &b.CheckInDate, &b.CheckOutDate,
		&b.Guests, &b.TotalPrice, &b.Status, &b.SpecialRequests, &b.CreatedAt, &b.UpdatedAt)
	return translateErr(err)
}

// BookingDetail is a booking joined with the hotel name/image and
// the room type label, as rendered on the booking history page.
type BookingDetail struct {
	model.Booking
	HotelName     string  `json:"hotel_name"`
	HotelImageURL *string `json:"image_url"`
	RoomType      string  `json:"room_type"`
}

// ListByUser returns all bookings for the given user joined with
// hotel and room display fields, newest first. When no bookings
// exist an empty slice is returned.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]BookingDetail, error) {
	const q = `SELECT b.id, b.user_id, b.hotel_id, b.room_id,
		DATE_FORMAT(b.check_in_date, '%Y-%m-%d'), DATE_FORMAT(b.check_out_date, '%Y-%m-%d'),
		b.guests, b.total_price, b.status, COALESCE(b.special_requests, ''),
		b.created_at, b.updated_at,
		h.name, h.image_url, r.room_type
	FROM bookings b
	JOIN hotels h ON h.id = b.hotel_id
	JOIN rooms r ON r.id = b.room_id
	WHERE b.user_id = ?
	ORDER BY b.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	out := make([]BookingDetail, 0)
	for rows.Next() {
		var d BookingDetail
		if err := rows.Scan(
			&d.ID, &d.UserID, &d.HotelID, &d.RoomID, &d.CheckInDate, &d.CheckOutDate,
			&d.Guests, &d.TotalPrice, &d.Status, &d.SpecialRequests,
			&d.CreatedAt, &d.UpdatedAt,
			&d.HotelName, &d.HotelImageURL, &d.RoomType,
		); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
