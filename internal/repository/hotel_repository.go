package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/stayhub/hotel-booking-api/internal/model"
)

// HotelRepo provides read and insert operations over the hotels
// table, including the filtered listing that joins each hotel with
// the price range of its rooms.
type HotelRepo struct{ DB *sql.DB }

func NewHotelRepo(db *sql.DB) *HotelRepo { return &HotelRepo{DB: db} }

// HotelFilter carries the listing predicates. Zero values mean
// "no filter": an empty search, the location "all" (or empty), a
// false couple-friendly flag and the full 0..1000 price window all
// leave the result set unrestricted.
type HotelFilter struct {
	Search         string
	Location       string
	MinPrice       float64
	MaxPrice       float64
	CoupleFriendly bool
}

// active reports whether any predicate deviates from its default.
// The price window only counts as a filter when narrowed, matching
// the original listing behavior where the unfiltered query skips
// the HAVING clause entirely.
func (f HotelFilter) active() bool {
	return f.Search != "" ||
		(f.Location != "" && f.Location != "all") ||
		f.CoupleFriendly ||
		f.MinPrice > 0 || (f.MaxPrice > 0 && f.MaxPrice < 1000)
}

// HotelSummary is a hotel row augmented with the derived nightly
// price range across its rooms. Hotels without rooms report 0 for
// both bounds via the COALESCE fallback.
type HotelSummary struct {
	model.Hotel
	MinPrice float64 `json:"min_price"`
	MaxPrice float64 `json:"max_price"`
}

// amenity list columns persist as JSON text; empty lists round-trip
// as NULL.

func encodeAmenities(a []string) (any, error) {
	if len(a) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func decodeAmenities(raw sql.NullString) ([]string, error) {
	if !raw.Valid || strings.TrimSpace(raw.String) == "" {
		return []string{}, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw.String), &out); err != nil {
		return nil, err
	}
	return out, nil
}

const hotelColumns = `h.id, h.name, h.description, h.location, h.address, h.city, h.country,
	h.rating, h.total_reviews, h.amenities, h.couple_friendly, h.image_url, h.created_at, h.updated_at`

func scanHotel(row interface{ Scan(...any) error }, extra ...any) (model.Hotel, error) {
	var h model.Hotel
	var amenities sql.NullString
	dest := []any{&h.ID, &h.Name, &h.Description, &h.Location, &h.Address, &h.City, &h.Country,
		&h.Rating, &h.TotalReviews, &amenities, &h.CoupleFriendly, &h.ImageURL, &h.CreatedAt, &h.UpdatedAt}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return model.Hotel{}, err
	}
	list, err := decodeAmenities(amenities)
	if err != nil {
		return model.Hotel{}, err
	}
	h.Amenities = list
	return h, nil
}

// List returns hotels joined with their room price range, ordered
// by descending rating. Predicates combine as the conjunction of
// whichever filters are non-default; the price window applies to
// the MINIMUM room price per hotel only, so a hotel qualifies when
// its cheapest room falls in range. With no active predicate the
// full set is returned without the HAVING window.
func (r *HotelRepo) List(ctx context.Context, f HotelFilter) ([]HotelSummary, error) {
	q := `SELECT ` + hotelColumns + `,
		COALESCE(MIN(rm.price_per_night), 0) AS min_price,
		COALESCE(MAX(rm.price_per_night), 0) AS max_price
	FROM hotels h
	LEFT JOIN rooms rm ON rm.hotel_id = h.id`

	var conds []string
	var args []any
	if f.Search != "" {
		conds = append(conds, "h.name LIKE ?")
		args = append(args, "%"+f.Search+"%")
	}
	if f.Location != "" && f.Location != "all" {
		conds = append(conds, "h.location = ?")
		args = append(args, f.Location)
	}
	if f.CoupleFriendly {
		conds = append(conds, "h.couple_friendly = TRUE")
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " GROUP BY h.id"
	if f.active() {
		// The bounds are applied as given, so an explicit zero upper
		// bound matches only zero-priced rooms. The 999999 fallback
		// keeps zero-room hotels from passing the upper bound the way
		// the 0 fallback lets them pass the lower one.
		q += ` HAVING COALESCE(MIN(rm.price_per_night), 0) >= ?
			AND COALESCE(MIN(rm.price_per_night), 999999) <= ?`
		args = append(args, f.MinPrice, f.MaxPrice)
	}
	q += " ORDER BY h.rating DESC"

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	out := make([]HotelSummary, 0)
	for rows.Next() {
		var s HotelSummary
		h, err := scanHotel(rows, &s.MinPrice, &s.MaxPrice)
		if err != nil {
			return nil, err
		}
		s.Hotel = h
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a single hotel row. Unknown ids map to ErrNotFound.
func (r *HotelRepo) GetByID(ctx context.Context, id uint64) (model.Hotel, error) {
	h, err := scanHotel(r.DB.QueryRowContext(ctx,
		"SELECT "+hotelColumns+" FROM hotels h WHERE h.id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return model.Hotel{}, ErrNotFound
	}
	if err != nil {
		return model.Hotel{}, translateErr(err)
	}
	return h, nil
}

// Create inserts a hotel (administrative use) and returns the
// stored row. Rating and total_reviews start at their defaults.
func (r *HotelRepo) Create(ctx context.Context, h model.Hotel) (model.Hotel, error) {
	amenities, err := encodeAmenities(h.Amenities)
	if err != nil {
		return model.Hotel{}, err
	}
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO hotels (name, description, location, address, city, country, amenities, couple_friendly, image_url)
		 VALUES (?,?,?,?,?,?,?,?,?)`,
		h.Name, h.Description, h.Location, h.Address, h.City, h.Country,
		amenities, h.CoupleFriendly, h.ImageURL)
	if err != nil {
		return model.Hotel{}, translateErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Hotel{}, err
	}
	return r.GetByID(ctx, uint64(id))
}
