//go:build integration

package integration

import (
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/paprooms/server/internal/models"
	"github.com/paprooms/server/pkg/database"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		getEnv("TEST_DB_HOST", "localhost"),
		getEnv("TEST_DB_PORT", "5434"),
		getEnv("TEST_DB_USER", "postgres"),
		getEnv("TEST_DB_PASSWORD", "postgres"),
		getEnv("TEST_DB_NAME", "paprooms_test_db"),
	)

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to test database: %v", err)
	}

	// Drop and recreate tables for clean state
	dropTables()

	if err := testDB.AutoMigrate(
		&models.User{},
		&models.Listing{},
		&models.Room{},
		&models.Booking{},
		&models.Payment{},
	); err != nil {
		log.Fatalf("failed to auto-migrate test database: %v", err)
	}

	// Same constraint production runs with, so the backstop path is exercised
	database.EnsureBookingConstraints(testDB)

	code := m.Run()

	dropTables()

	os.Exit(code)
}

func dropTables() {
	testDB.Exec("DROP TABLE IF EXISTS payments")
	testDB.Exec("DROP TABLE IF EXISTS bookings")
	testDB.Exec("DROP TABLE IF EXISTS rooms")
	testDB.Exec("DROP TABLE IF EXISTS listings")
	testDB.Exec("DROP TABLE IF EXISTS users")
}

func cleanTables() {
	testDB.Exec("DELETE FROM payments")
	testDB.Exec("DELETE FROM bookings")
	testDB.Exec("DELETE FROM rooms")
	testDB.Exec("DELETE FROM listings")
	testDB.Exec("DELETE FROM users")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
