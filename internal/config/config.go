package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds everything the application reads from the environment.
// It is built once in main and passed by reference into the components
// that need it; nothing in this codebase reads environment variables
// after startup.
type Config struct {
	AppPort     string
	DatabaseURL string
	JWTSecret   string

	// Identity gateway (Supabase-compatible auth API).
	SupabaseURL        string
	SupabaseServiceKey string

	// Object storage (Backblaze B2 via its S3-compatible API).
	B2KeyID      string
	B2AppKey     string
	B2BucketName string
	B2Region     string
	B2S3Domain   string

	// Optional: empty URL disables event publication entirely.
	RabbitMQURL string
}

// Load reads configuration from a .env file (if present) and the
// environment. Missing identity/storage credentials are not an error
// here; the coordinators report them when the first call needs them.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables and defaults.")
	}

	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("JWT_SECRET", "change-me-in-production")
	viper.SetDefault("B2_REGION", "us-west-004")
	viper.SetDefault("B2_S3_DOMAIN", "backblazeb2.com")
	viper.AutomaticEnv()

	return &Config{
		AppPort:            viper.GetString("APP_PORT"),
		DatabaseURL:        viper.GetString("DATABASE_URL"),
		JWTSecret:          viper.GetString("JWT_SECRET"),
		SupabaseURL:        viper.GetString("SUPABASE_URL"),
		SupabaseServiceKey: viper.GetString("SUPABASE_SERVICE_ROLE_KEY"),
		B2KeyID:            viper.GetString("B2_KEY_ID"),
		B2AppKey:           viper.GetString("B2_APPLICATION_KEY"),
		B2BucketName:       viper.GetString("B2_BUCKET_NAME"),
		B2Region:           viper.GetString("B2_REGION"),
		B2S3Domain:         viper.GetString("B2_S3_DOMAIN"),
		RabbitMQURL:        viper.GetString("RABBITMQ_URL"),
	}
}
