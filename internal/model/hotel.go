package model

import "time"

// Hotel represents a bookable property stored in the `hotels`
// table. Rating and TotalReviews are denormalized aggregates
// written at seed time; they are not recomputed from review rows.
// Amenities persist as a JSON array in a text column.
//
// Fields:
//  ID             – primary key identifier.
//  Name           – display name of the property.
//  Description    – marketing description (nullable).
//  Location       – coarse location facet used for filtering, e.g. "Downtown".
//  Address        – street address (nullable).
//  City           – city name (nullable).
//  Country        – country name (nullable).
//  Rating         – aggregate star rating, one decimal place.
//  TotalReviews   – stored review count.
//  Amenities      – list of amenity labels.
//  CoupleFriendly – boolean filter facet, no further semantics.
//  ImageURL       – reference to the property image (nullable).
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type Hotel struct {
	ID             uint64    `json:"id"`              // hotels.id
	Name           string    `json:"name"`            // hotels.name
	Description    *string   `json:"description"`     // hotels.description (nullable)
	Location       string    `json:"location"`        // hotels.location
	Address        *string   `json:"address"`         // hotels.address (nullable)
	City           *string   `json:"city"`            // hotels.city (nullable)
	Country        *string   `json:"country"`         // hotels.country (nullable)
	Rating         float64   `json:"rating"`          // hotels.rating
	TotalReviews   uint32    `json:"total_reviews"`   // hotels.total_reviews
	Amenities      []string  `json:"amenities"`       // hotels.amenities (JSON text)
	CoupleFriendly bool      `json:"couple_friendly"` // hotels.couple_friendly
	ImageURL       *string   `json:"image_url"`       // hotels.image_url (nullable)
	CreatedAt      time.Time `json:"created_at"`      // hotels.created_at
	UpdatedAt      time.Time `json:"updated_at"`      // hotels.updated_at
}
