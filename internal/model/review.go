package model

import "time"

// Review is a user's rating and comment on a hotel, optionally
// tied to a booking. Reviews are created only by seeding; there
// is no user-facing review creation endpoint.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – reviewer.
//  HotelID   – reviewed hotel.
//  BookingID – booking this review refers to (nullable).
//  Rating    – 1..5 stars.
//  Title     – short headline (nullable).
//  Comment   – review body (nullable).
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Review struct {
	ID        uint64    `json:"id"`         // reviews.id
	UserID    uint64    `json:"user_id"`    // reviews.user_id
	HotelID   uint64    `json:"hotel_id"`   // reviews.hotel_id
	BookingID *uint64   `json:"booking_id"` // reviews.booking_id (nullable)
	Rating    uint8     `json:"rating"`     // reviews.rating
	Title     *string   `json:"title"`      // reviews.title (nullable)
	Comment   *string   `json:"comment"`    // reviews.comment (nullable)
	CreatedAt time.Time `json:"created_at"` // reviews.created_at
	UpdatedAt time.Time `json:"updated_at"` // reviews.updated_at
}
