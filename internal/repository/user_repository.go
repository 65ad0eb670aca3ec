package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/stayhub/hotel-booking-api/internal/model"
	"github.com/stayhub/hotel-booking-api/internal/utils"
)

// UserRepo provides CRUD operations over the users table. Emails
// are normalized to lower case before every lookup or insert so
// the unique constraint behaves case-insensitively.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = `id, email, first_name, last_name, phone, id_type, id_number,
	preferred_currency, preferred_language, newsletter_subscription, special_offers,
	room_preferences, dietary_restrictions, password_hash, created_at, updated_at`

// scanUser reads one row in userColumns order.
func scanUser(row interface{ Scan(...any) error }) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Phone, &u.IDType,
		&u.IDNumber, &u.PreferredCurrency, &u.PreferredLanguage, &u.NewsletterSubscription,
		&u.SpecialOffers, &u.RoomPreferences, &u.DietaryRestrictions, &u.PasswordHash,
		&u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// Register inserts a credential-based user with a bcrypt hash and
// the default currency/language preferences, and returns the
// stored row. Duplicate emails map to ErrEmailExists.
func (r *UserRepo) Register(ctx context.Context, email, firstName, lastName, password string, cost int) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return model.User{}, err
	}
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO users (email, first_name, last_name, password_hash, preferred_currency, preferred_language)
		 VALUES (?,?,?,?, 'USD', 'english')`,
		email, firstName, lastName, hash)
	if err != nil {
		return model.User{}, translateErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// CreateProfile inserts a full profile row (POST /users). All
// preference fields come from the caller; the account has no
// password and can only be used via social sign-in.
func (r *UserRepo) CreateProfile(ctx context.Context, u model.User) (model.User, error) {
	email := strings.ToLower(strings.TrimSpace(u.Email))
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO users (email, first_name, last_name, phone, id_type, id_number,
			preferred_currency, preferred_language, newsletter_subscription, special_offers,
			room_preferences, dietary_restrictions)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		email, u.FirstName, u.LastName, u.Phone, u.IDType, u.IDNumber,
		u.PreferredCurrency, u.PreferredLanguage, u.NewsletterSubscription, u.SpecialOffers,
		u.RoomPreferences, u.DietaryRestrictions)
	if err != nil {
		return model.User{}, translateErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches a user by id. Missing rows map to ErrNotFound.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		return model.User{}, translateErr(err)
	}
	return u, nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
	if err == sql.ErrNoRows {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		return model.User{}, translateErr(err)
	}
	return u, nil
}

// UpdateProfile overwrites every mutable profile field of the user
// (no partial-patch semantics; callers resend the full profile) and
// returns the updated row, or ErrNotFound when the id is unknown.
// Existence is verified with a lookup rather than RowsAffected,
// since MySQL reports zero affected rows for no-op updates.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, u model.User) (model.User, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return model.User{}, err
	}
	_, err := r.DB.ExecContext(ctx,
		`UPDATE users SET first_name=?, last_name=?, phone=?, id_type=?, id_number=?,
			preferred_currency=?, preferred_language=?, newsletter_subscription=?,
			special_offers=?, room_preferences=?, dietary_restrictions=?,
			updated_at=CURRENT_TIMESTAMP
		 WHERE id=?`,
		u.FirstName, u.LastName, u.Phone, u.IDType, u.IDNumber,
		u.PreferredCurrency, u.PreferredLanguage, u.NewsletterSubscription,
		u.SpecialOffers, u.RoomPreferences, u.DietaryRestrictions, id)
	if err != nil {
		return model.User{}, translateErr(err)
	}
	return r.GetByID(ctx, id)
}

// FindOrCreateByEmail backs social sign-in: an externally verified
// identity assertion either attaches to the existing row matched by
// email or creates a new passwordless user from the asserted names.
func (r *UserRepo) FindOrCreateByEmail(ctx context.Context, email, firstName, lastName string) (model.User, error) {
	u, err := r.GetByEmail(ctx, email)
	if err == nil {
		return u, nil
	}
	if err != ErrNotFound {
		return model.User{}, err
	}
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO users (email, first_name, last_name, preferred_currency, preferred_language)
		 VALUES (?,?,?, 'USD', 'english')`,
		strings.ToLower(strings.TrimSpace(email)), firstName, lastName)
	if err != nil {
		return model.User{}, translateErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// ExistsTx reports whether a user row exists, inside a transaction.
func (r *UserRepo) ExistsTx(ctx context.Context, tx *sql.Tx, id uint64) (bool, error) {
	var found uint64
	err := tx.QueryRowContext(ctx, "SELECT id FROM users WHERE id=? LIMIT 1", id).Scan(&found)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, translateErr(err)
	}
	return true, nil
}

// EnsureDemoUserTx inserts the demo user under the given id when it
// is missing. Only called when the server runs in demo mode; the
// fallback never executes on production code paths.
func (r *UserRepo) EnsureDemoUserTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO users (id, email, first_name, last_name, phone, id_type, id_number, preferred_currency, preferred_language)
		 VALUES (?, 'demo@example.com', 'Demo', 'User', '+1-555-0123', 'passport', 'AB123456', 'USD', 'english')
		 ON DUPLICATE KEY UPDATE email=email`,
		id)
	return translateErr(err)
}
