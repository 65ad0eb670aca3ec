package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// SchemaRepo owns database initialization and the diagnostic
// operations exposed under /v1/admin. Initialization is idempotent:
// every table is created with IF NOT EXISTS and seed rows are only
// inserted into empty tables, so the endpoint can be called any
// number of times.
type SchemaRepo struct{ DB *sql.DB }

func NewSchemaRepo(db *sql.DB) *SchemaRepo { return &SchemaRepo{DB: db} }

// appTables lists the tables required by the application, in
// creation order (parents before children).
var appTables = []string{"users", "hotels", "rooms", "bookings", "reviews", "refresh_tokens"}

var createStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		email VARCHAR(255) NOT NULL UNIQUE,
		first_name VARCHAR(100) NOT NULL,
		last_name VARCHAR(100) NOT NULL,
		phone VARCHAR(20),
		id_type VARCHAR(50),
		id_number VARCHAR(100),
		preferred_currency VARCHAR(3) NOT NULL DEFAULT 'USD',
		preferred_language VARCHAR(50) NOT NULL DEFAULT 'english',
		newsletter_subscription BOOLEAN NOT NULL DEFAULT TRUE,
		special_offers BOOLEAN NOT NULL DEFAULT TRUE,
		room_preferences TEXT,
		dietary_restrictions TEXT,
		password_hash VARCHAR(255),
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS hotels (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		description TEXT,
		location VARCHAR(255) NOT NULL,
		address TEXT,
		city VARCHAR(100),
		country VARCHAR(100),
		rating DECIMAL(2,1) NOT NULL DEFAULT 0,
		total_reviews INT UNSIGNED NOT NULL DEFAULT 0,
		amenities TEXT,
		couple_friendly BOOLEAN NOT NULL DEFAULT FALSE,
		image_url TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS rooms (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		hotel_id BIGINT UNSIGNED NOT NULL,
		room_type VARCHAR(100) NOT NULL,
		description TEXT,
		price_per_night DECIMAL(10,2) NOT NULL,
		max_occupancy INT UNSIGNED NOT NULL,
		amenities TEXT,
		image_url TEXT,
		total_rooms INT UNSIGNED NOT NULL DEFAULT 1,
		available_rooms INT UNSIGNED NOT NULL DEFAULT 1,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		CONSTRAINT fk_rooms_hotel FOREIGN KEY (hotel_id) REFERENCES hotels(id) ON DELETE CASCADE
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		hotel_id BIGINT UNSIGNED NOT NULL,
		room_id BIGINT UNSIGNED NOT NULL,
		check_in_date DATE NOT NULL,
		check_out_date DATE NOT NULL,
		guests INT UNSIGNED NOT NULL,
		total_price DECIMAL(10,2) NOT NULL,
		status VARCHAR(50) NOT NULL DEFAULT 'pending',
		special_requests TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		CONSTRAINT fk_bookings_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
		CONSTRAINT fk_bookings_hotel FOREIGN KEY (hotel_id) REFERENCES hotels(id) ON DELETE CASCADE,
		CONSTRAINT fk_bookings_room FOREIGN KEY (room_id) REFERENCES rooms(id) ON DELETE CASCADE
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS reviews (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		hotel_id BIGINT UNSIGNED NOT NULL,
		booking_id BIGINT UNSIGNED,
		rating TINYINT UNSIGNED NOT NULL,
		title VARCHAR(255),
		comment TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		CONSTRAINT fk_reviews_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
		CONSTRAINT fk_reviews_hotel FOREIGN KEY (hotel_id) REFERENCES hotels(id) ON DELETE CASCADE,
		CONSTRAINT fk_reviews_booking FOREIGN KEY (booking_id) REFERENCES bookings(id) ON DELETE SET NULL,
		CONSTRAINT chk_reviews_rating CHECK (rating BETWEEN 1 AND 5)
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64) NOT NULL UNIQUE,
		expires_at TIMESTAMP NOT NULL,
		revoked_at TIMESTAMP NULL DEFAULT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT fk_refresh_tokens_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB`,
}

// Counts maps table name to row count, used by Init and Status
// responses.
type Counts map[string]int64

// Init creates all application tables if absent and seeds
// demonstration rows into empty tables: the demo user, three
// hotels with six rooms, and three reviews. It returns the final
// row counts.
func (r *SchemaRepo) Init(ctx context.Context) (Counts, error) {
	for _, stmt := range createStatements {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return nil, err
		}
	}

	var users, hotels int64
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&users); err != nil {
		return nil, err
	}
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM hotels").Scan(&hotels); err != nil {
		return nil, err
	}

	if users == 0 {
		if err := r.seedDemoUser(ctx); err != nil {
			return nil, err
		}
	}
	if hotels == 0 {
		if err := r.seedHotels(ctx); err != nil {
			return nil, err
		}
	}
	return r.counts(ctx)
}

// seedDemoUser inserts the single demo account. The stored hash is
// bcrypt("password123") so the credential flow works out of the box.
func (r *SchemaRepo) seedDemoUser(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO users (email, first_name, last_name, phone, id_type, id_number, preferred_currency, preferred_language, password_hash)
		 VALUES ('demo@example.com', 'Demo', 'User', '+1-555-0123', 'passport', 'AB123456', 'USD', 'english',
		 '$2a$12$LQv3c1yqBWVHxkd0LHAkCOYz6TtxMQJqhN8/LewdBMY9f5zqiUm4W')`)
	return err
}

type seedHotel struct {
	name, description, location, address, city, country string
	rating                                              float64
	totalReviews                                        int
	amenities                                           string
	coupleFriendly                                      bool
	imageURL                                            string
}

type seedRoom struct {
	hotelID                        int
	roomType, description          string
	pricePerNight                  float64
	maxOccupancy, total, available int
	amenities, imageURL            string
}

// seedHotels inserts the three demonstration hotels, their rooms
// and the demo user's reviews. Hotel ids are assumed to start at 1
// on a freshly created schema, which Init guarantees by only
// seeding empty tables.
func (r *SchemaRepo) seedHotels(ctx context.Context) error {
	hotels := []seedHotel{
		{"Grand Plaza Hotel", "Luxury hotel in the heart of downtown with world-class amenities",
			"Downtown", "123 Main Street", "New York", "USA", 4.5, 1250,
			`["Free WiFi","Pool","Spa","Gym","Restaurant"]`, true, "/images/hotels/grand-plaza.svg"},
		{"Seaside Resort", "Beautiful beachfront resort with stunning ocean views",
			"Beachfront", "456 Ocean Drive", "Miami", "USA", 4.8, 890,
			`["Ocean View","Restaurant","Gym","Beach Access","Pool"]`, true, "/images/hotels/seaside-resort.svg"},
		{"City Comfort Inn", "Comfortable and affordable accommodation in midtown",
			"Midtown", "789 City Avenue", "New York", "USA", 4.0, 650,
			`["Free Breakfast","Parking","Pet Friendly","Free WiFi"]`, false, "/images/hotels/city-comfort.svg"},
	}
	for _, h := range hotels {
		if _, err := r.DB.ExecContext(ctx,
			`INSERT INTO hotels (name, description, location, address, city, country, rating, total_reviews, amenities, couple_friendly, image_url)
			 VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
			h.name, h.description, h.location, h.address, h.city, h.country,
			h.rating, h.totalReviews, h.amenities, h.coupleFriendly, h.imageURL); err != nil {
			return err
		}
	}

	rooms := []seedRoom{
		{1, "Standard Room", "Comfortable room with city view", 120.00, 2, 20, 15,
			`["Free WiFi","Air Conditioning","TV"]`, "/images/rooms/standard.svg"},
		{1, "Deluxe Suite", "Spacious suite with premium amenities", 250.00, 4, 10, 8,
			`["Free WiFi","Air Conditioning","TV","Mini Bar","Balcony"]`, "/images/rooms/deluxe-suite.svg"},
		{2, "Ocean View Room", "Room with stunning ocean views", 200.00, 2, 30, 25,
			`["Ocean View","Free WiFi","Air Conditioning","TV"]`, "/images/rooms/ocean-view.svg"},
		{2, "Beach Villa", "Private villa steps from the beach", 400.00, 6, 5, 3,
			`["Ocean View","Private Beach","Kitchen","Free WiFi"]`, "/images/rooms/beach-villa.svg"},
		{3, "Standard Room", "Clean and comfortable standard room", 85.00, 2, 40, 35,
			`["Free WiFi","Air Conditioning","TV"]`, "/images/rooms/standard.svg"},
		{3, "Family Room", "Spacious room perfect for families", 120.00, 4, 15, 12,
			`["Free WiFi","Air Conditioning","TV","Microwave"]`, "/images/rooms/family.svg"},
	}
	for _, rm := range rooms {
		if _, err := r.DB.ExecContext(ctx,
			`INSERT INTO rooms (hotel_id, room_type, description, price_per_night, max_occupancy, amenities, total_rooms, available_rooms, image_url)
			 VALUES (?,?,?,?,?,?,?,?,?)`,
			rm.hotelID, rm.roomType, rm.description, rm.pricePerNight, rm.maxOccupancy,
			rm.amenities, rm.total, rm.available, rm.imageURL); err != nil {
			return err
		}
	}

	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO reviews (user_id, hotel_id, rating, title, comment) VALUES
		 (1, 1, 5, 'Excellent stay!', 'The Grand Plaza Hotel exceeded all expectations. The service was impeccable and the amenities were top-notch.'),
		 (1, 2, 4, 'Beautiful ocean views', 'The Seaside Resort had stunning views and great beach access. Would definitely return!'),
		 (1, 3, 4, 'Good value for money', 'City Comfort Inn provided exactly what we needed at a reasonable price. Clean and comfortable.')`)
	return err
}

func (r *SchemaRepo) counts(ctx context.Context) (Counts, error) {
	out := make(Counts, len(appTables))
	for _, t := range appTables {
		var n int64
		if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+t).Scan(&n); err != nil {
			return nil, err
		}
		out[t] = n
	}
	return out, nil
}

// Status describes the current schema state for the diagnostics
// endpoint.
type Status struct {
	AllTables      []string `json:"allTables"`
	RequiredTables []string `json:"requiredTables"`
	MissingTables  []string `json:"missingTables"`
	TablesReady    bool     `json:"tablesReady"`
	Counts         Counts   `json:"counts"`
}

// Status lists the tables present in the current database, the
// missing required ones, and per-table row counts when everything
// is in place.
func (r *SchemaRepo) Status(ctx context.Context) (Status, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT table_name FROM information_schema.tables
		 WHERE table_schema = DATABASE() ORDER BY table_name`)
	if err != nil {
		return Status{}, err
	}
	defer rows.Close()

	present := make(map[string]bool)
	st := Status{RequiredTables: appTables, AllTables: []string{}, MissingTables: []string{}}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return Status{}, err
		}
		present[name] = true
		st.AllTables = append(st.AllTables, name)
	}
	if err := rows.Err(); err != nil {
		return Status{}, err
	}
	for _, t := range appTables {
		if !present[t] {
			st.MissingTables = append(st.MissingTables, t)
		}
	}
	st.TablesReady = len(st.MissingTables) == 0
	if st.TablesReady {
		counts, err := r.counts(ctx)
		if err != nil {
			return Status{}, err
		}
		st.Counts = counts
	}
	return st, nil
}

// RepairSequences resynchronizes each table's AUTO_INCREMENT
// counter to max(id)+1, recovering from seed rows inserted with
// explicit ids. ALTER TABLE cannot take placeholders, so the value
// is interpolated; it comes from our own MAX(id) query, never from
// caller input.
func (r *SchemaRepo) RepairSequences(ctx context.Context) (map[string]int64, error) {
	out := make(map[string]int64, len(appTables))
	for _, t := range appTables {
		var maxID sql.NullInt64
		if err := r.DB.QueryRowContext(ctx, "SELECT MAX(id) FROM "+t).Scan(&maxID); err != nil {
			return nil, err
		}
		next := maxID.Int64 + 1
		if next < 1 {
			next = 1
		}
		if _, err := r.DB.ExecContext(ctx, fmt.Sprintf("ALTER TABLE %s AUTO_INCREMENT = %d", t, next)); err != nil {
			return nil, err
		}
		out[t] = next
	}
	return out, nil
}
