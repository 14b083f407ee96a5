package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Database    DatabaseConfig
	Redis       RedisConfig
	Razorpay    RazorpayConfig
	Admin       AdminConfig
	LogLevel    string
}

type DatabaseConfig struct {
	Host          string
	Port          string
	User          string
	Password      string
	DBName        string
	SSLMode       string
	MigrationsDir string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RazorpayConfig holds the gateway credentials. Both fields may be empty:
// checkout endpoints answer with a configuration error instead of the
// server refusing to boot.
type RazorpayConfig struct {
	KeyID     string
	KeySecret string
}

type AdminConfig struct {
	KeyHash string // bcrypt hash of the admin API key
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("LOG_LEVEL", "info")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Database: DatabaseConfig{
			Host:          getEnvOrViper("DB_HOST", "localhost"),
			Port:          getEnvOrViper("DB_PORT", "5432"),
			User:          getEnvOrViper("DB_USER", "postgres"),
			Password:      getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:        getEnvOrViper("DB_NAME", "storefront"),
			SSLMode:       getEnvOrViper("DB_SSLMODE", "disable"),
			MigrationsDir: getEnvOrViper("DB_MIGRATIONS_DIR", "migrations"),
		},
		Redis: RedisConfig{
			Addr:     getEnvOrViper("REDIS_ADDR", "localhost:6379"),
			Password: getEnvOrViper("REDIS_PASSWORD", ""),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Razorpay: RazorpayConfig{
			KeyID:     getEnvOrViper("RAZORPAY_KEY_ID", ""),
			KeySecret: getEnvOrViper("RAZORPAY_KEY_SECRET", ""),
		},
		Admin: AdminConfig{
			KeyHash: getEnvOrViper("ADMIN_KEY_HASH", ""),
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
