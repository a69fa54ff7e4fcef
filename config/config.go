package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RabbitURL string

	JWTSecret string

	RazorpayKeyID     string
	RazorpayKeySecret string

	ResendAPIKey string
	MailFrom     string
}

func Load() *Config {
	// .env is optional; real deployments use the environment directly
	_ = godotenv.Load()

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "paprooms"),

		RabbitURL: os.Getenv("RABBIT_URL"),

		JWTSecret: getEnv("JWT_SECRET", "dev-secret-change-me"),

		RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),

		ResendAPIKey: os.Getenv("RESEND_API_KEY"),
		MailFrom:     getEnv("MAIL_FROM", "PapRooms <no-reply@paprooms.com>"),
	}
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}

// PaymentsEnabled reports whether gateway credentials are present. When they
// are not, payment endpoints answer 503 instead of crashing.
func (c *Config) PaymentsEnabled() bool {
	return c.RazorpayKeyID != "" && c.RazorpayKeySecret != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
