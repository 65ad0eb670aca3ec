// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when a booking is successfully
// confirmed. It carries enough information for downstream consumers to
// log, notify, or trigger analytics without querying the primary
// database.
type BookingConfirmedEvent struct {
	BookingID    uint64  `json:"booking_id"`
	UserID       uint64  `json:"user_id"`
	HotelID      uint64  `json:"hotel_id"`
	HotelName    string  `json:"hotel_name"`
	RoomID       uint64  `json:"room_id"`
	RoomType     string  `json:"room_type"`
	CheckInDate  string  `json:"check_in_date"`
	CheckOutDate string  `json:"check_out_date"`
	Guests       uint32  `json:"guests"`
	TotalPrice   float64 `json:"total_price"`
	ConfirmedAt  string  `json:"confirmed_at"`
}
