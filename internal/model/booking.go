package model

import "time"

// Booking records a user's reservation of a room over a date
// range, stored in the `bookings` table. Status is written once
// at creation ("confirmed") and never transitioned afterwards.
// TotalPrice is recomputed server-side from the room's nightly
// rate and the night count; the caller-supplied figure is only
// accepted when it matches within rounding tolerance.
//
// Fields:
//  ID              – primary key identifier.
//  UserID          – user who made the booking.
//  HotelID         – hotel being booked.
//  RoomID          – room type being booked.
//  CheckInDate     – first night (date only).
//  CheckOutDate    – day of departure (date only, exclusive).
//  Guests          – number of guests.
//  TotalPrice      – nights × nightly rate.
//  Status          – booking state, fixed to "confirmed" at creation.
//  SpecialRequests – free-text requests (may be empty).
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Booking struct {
	ID              uint64    `json:"id"`               // bookings.id
	UserID          uint64    `json:"user_id"`          // bookings.user_id
	HotelID         uint64    `json:"hotel_id"`         // bookings.hotel_id
	RoomID          uint64    `json:"room_id"`          // bookings.room_id
	CheckInDate     string    `json:"check_in_date"`    // bookings.check_in_date (YYYY-MM-DD)
	CheckOutDate    string    `json:"check_out_date"`   // bookings.check_out_date (YYYY-MM-DD)
	Guests          uint32    `json:"guests"`           // bookings.guests
	TotalPrice      float64   `json:"total_price"`      // bookings.total_price
	Status          string    `json:"status"`           // bookings.status
	SpecialRequests string    `json:"special_requests"` // bookings.special_requests
	CreatedAt       time.Time `json:"created_at"`       // bookings.created_at
	UpdatedAt       time.Time `json:"updated_at"`       // bookings.updated_at
}
