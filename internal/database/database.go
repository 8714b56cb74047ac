package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	_ "modernc.org/sqlite"
)

func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.Println("Using SQLite for local development:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// Migrate creates the schema. Statements are issued one by one as raw SQL:
// the partial unique index on booking slots cannot be expressed through
// AutoMigrate, and the syntax below works on both PostgreSQL and SQLite.
func Migrate(db *gorm.DB) error {
	for _, stmt := range schemaStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username VARCHAR(50) NOT NULL UNIQUE,
		email VARCHAR(100) NOT NULL UNIQUE,
		password_hash VARCHAR(128) NOT NULL,
		role VARCHAR(10) NOT NULL DEFAULT 'user',
		email_verified BOOLEAN NOT NULL DEFAULT FALSE,
		last_login TIMESTAMP,
		created_at TIMESTAMP NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS properties (
		id TEXT PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		description TEXT,
		owner_id TEXT NOT NULL REFERENCES users(id),
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS property_members (
		id TEXT PRIMARY KEY,
		property_id TEXT NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
		user_id TEXT NOT NULL REFERENCES users(id),
		role VARCHAR(10) NOT NULL DEFAULT 'member',
		invitation_status VARCHAR(10) NOT NULL DEFAULT 'pending',
		joined_at TIMESTAMP NOT NULL
	)`,

	// one membership edge per (property, user)
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_property_member
		ON property_members (property_id, user_id)`,

	`CREATE TABLE IF NOT EXISTS rooms (
		id TEXT PRIMARY KEY,
		property_id TEXT NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
		name VARCHAR(100) NOT NULL,
		capacity INTEGER NOT NULL DEFAULT 1,
		description TEXT,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS time_allocations (
		id TEXT PRIMARY KEY,
		property_id TEXT NOT NULL UNIQUE REFERENCES properties(id) ON DELETE CASCADE,
		weekly_limit_days FLOAT NOT NULL DEFAULT 7.0,
		morning_duration FLOAT NOT NULL DEFAULT 0.5,
		midday_duration FLOAT NOT NULL DEFAULT 1.0,
		evening_duration FLOAT NOT NULL DEFAULT 1.0,
		reset_day_of_week INTEGER NOT NULL DEFAULT 1,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS booking_applications (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		room_id TEXT NOT NULL REFERENCES rooms(id),
		booking_date DATE NOT NULL,
		session_type VARCHAR(10) NOT NULL,
		status VARCHAR(10) NOT NULL DEFAULT 'pending',
		notes TEXT,
		duration_value FLOAT NOT NULL,
		approved_by TEXT REFERENCES users(id),
		approval_notes TEXT,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP
	)`,

	// At most one pending/approved application per (room, date, session).
	// Rejected applications stay out of the index, so a freed slot can be
	// booked again. Concurrent creates for the same slot are serialized
	// here: the losing insert fails with a unique violation.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_booking_slot_active
		ON booking_applications (room_id, booking_date, session_type)
		WHERE status IN ('pending', 'approved')`,
}
