package database

import (
	"log"

	"github.com/paprooms/server/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Listing{},
		&models.Room{},
		&models.Booking{},
		&models.Payment{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	EnsureBookingConstraints(db)

	return db
}

// EnsureBookingConstraints installs the store-level backstop against
// double-booking: an exclusion constraint over (room_id, [check_in,check_out))
// for active bookings. The row lock in the booking transaction is the primary
// guard; this catches anything that slips past it. Requires btree_gist, which
// may be unavailable on locked-down instances, hence the soft failure.
func EnsureBookingConstraints(db *gorm.DB) {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		log.Printf("btree_gist unavailable, skipping exclusion constraint: %v", err)
		return
	}

	err := db.Exec(`
		ALTER TABLE bookings
		ADD CONSTRAINT bookings_no_overlap
		EXCLUDE USING gist (
			room_id WITH =,
			tsrange(check_in, check_out) WITH &&
		) WHERE (status IN ('pending', 'confirmed'))
	`).Error
	if err != nil {
		// Already present on every run after the first.
		log.Printf("bookings_no_overlap not added: %v", err)
	}
}
