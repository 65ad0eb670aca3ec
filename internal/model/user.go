package model

import "time"

// User represents an application user record as stored in the
// `users` table. Besides the identity columns it carries the
// profile preference fields edited on the settings page. The
// password hash is nullable: accounts created through social
// sign-in have no local password and cannot use credential login.
//
// Fields:
//  ID                     – primary key identifier of the user.
//  Email                  – unique email address.
//  FirstName              – given name.
//  LastName               – family name.
//  Phone                  – contact phone number (nullable).
//  IDType                 – identity document type, e.g. "passport" (nullable).
//  IDNumber               – identity document number (nullable).
//  PreferredCurrency      – ISO currency code, defaults to USD.
//  PreferredLanguage      – display language, defaults to english.
//  NewsletterSubscription – whether the user receives the newsletter.
//  SpecialOffers          – whether the user receives promotional offers.
//  RoomPreferences        – free-text room preferences (nullable).
//  DietaryRestrictions    – free-text dietary restrictions (nullable).
//  PasswordHash           – bcrypt hash, nil for social-only accounts.
//  CreatedAt              – timestamp of creation.
//  UpdatedAt              – timestamp of last update.
type User struct {
	ID                     uint64    `json:"id"`                      // users.id
	Email                  string    `json:"email"`                   // users.email
	FirstName              string    `json:"first_name"`              // users.first_name
	LastName               string    `json:"last_name"`               // users.last_name
	Phone                  *string   `json:"phone"`                   // users.phone (nullable)
	IDType                 *string   `json:"id_type"`                 // users.id_type (nullable)
	IDNumber               *string   `json:"id_number"`               // users.id_number (nullable)
	PreferredCurrency      string    `json:"preferred_currency"`      // users.preferred_currency
	PreferredLanguage      string    `json:"preferred_language"`      // users.preferred_language
	NewsletterSubscription bool      `json:"newsletter_subscription"` // users.newsletter_subscription
	SpecialOffers          bool      `json:"special_offers"`          // users.special_offers
	RoomPreferences        *string   `json:"room_preferences"`        // users.room_preferences (nullable)
	DietaryRestrictions    *string   `json:"dietary_restrictions"`    // users.dietary_restrictions (nullable)
	PasswordHash           *string   `json:"-"`                       // users.password_hash (never serialized)
	CreatedAt              time.Time `json:"created_at"`              // users.created_at
	UpdatedAt              time.Time `json:"updated_at"`              // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each
// refresh token belongs to a user and contains metadata for expiry
// and revocation.  The plain token is not stored; only its
// SHA-256 hash.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
