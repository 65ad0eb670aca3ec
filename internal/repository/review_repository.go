package repository

import (
	"context"
	"database/sql"

	"github.com/stayhub/hotel-booking-api/internal/model"
)

// ReviewRepo reads reviews for the hotel detail page. Reviews are
// written only by schema seeding; there is no user-facing creation
// path, so the repository exposes no insert method outside of the
// seed statements in SchemaRepo.
type ReviewRepo struct{ DB *sql.DB }

func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{DB: db} }

// ReviewDetail is a review joined with the reviewer's name parts.
type ReviewDetail struct {
	model.Review
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// ListByHotel returns a hotel's reviews joined with reviewer
// names, newest first.
func (r *ReviewRepo) ListByHotel(ctx context.Context, hotelID uint64) ([]ReviewDetail, error) {
	const q = `SELECT rv.id, rv.user_id, rv.hotel_id, rv.booking_id, rv.rating, rv.title, rv.comment,
		u.first_name, u.last_name, rv.created_at, rv.updated_at
	FROM reviews rv
	JOIN users u ON u.id = rv.user_id
	WHERE rv.hotel_id = ?
	ORDER BY rv.created_at DESC`
	rows, err := r.DB.QueryContext(ctx, q, hotelID)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	out := make([]ReviewDetail, 0)
	for rows.Next() {
		var d ReviewDetail
		if err := rows.Scan(&d.ID, &d.UserID, &d.HotelID, &d.BookingID, &d.Rating,
			&d.Title, &d.Comment, &d.FirstName, &d.LastName, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
