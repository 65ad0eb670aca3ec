package model

import "time"

// Room represents a bookable unit type within a hotel, stored in
// the `rooms` table. AvailableRooms is the mutable availability
// counter decremented once per successful booking; the intended
// invariant is 0 <= AvailableRooms <= TotalRooms and the decrement
// is guarded in SQL so the counter can never go negative.
//
// Fields:
//  ID             – primary key identifier.
//  HotelID        – parent hotel.
//  RoomType       – unit type label, e.g. "Deluxe Suite".
//  Description    – description of the unit (nullable).
//  PricePerNight  – nightly rate.
//  MaxOccupancy   – maximum number of guests.
//  Amenities      – list of amenity labels.
//  ImageURL       – reference to the room image (nullable).
//  TotalRooms     – number of physical units of this type.
//  AvailableRooms – units still available for booking.
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type Room struct {
	ID             uint64    `json:"id"`              // rooms.id
	HotelID        uint64    `json:"hotel_id"`        // rooms.hotel_id
	RoomType       string    `json:"room_type"`       // rooms.room_type
	Description    *string   `json:"description"`     // rooms.description (nullable)
	PricePerNight  float64   `json:"price_per_night"` // rooms.price_per_night
	MaxOccupancy   uint32    `json:"max_occupancy"`   // rooms.max_occupancy
	Amenities      []string  `json:"amenities"`       // rooms.amenities (JSON text)
	ImageURL       *string   `json:"image_url"`       // rooms.image_url (nullable)
	TotalRooms     uint32    `json:"total_rooms"`     // rooms.total_rooms
	AvailableRooms uint32    `json:"available_rooms"` // rooms.available_rooms
	CreatedAt      time.Time `json:"created_at"`      // rooms.created_at
	UpdatedAt      time.Time `json:"updated_at"`      // rooms.updated_at
}
