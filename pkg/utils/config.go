package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	Booking  BookingConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// ProfileTTL is how long cached user profiles live, in minutes.
	ProfileTTLMinutes int
}

type SessionConfig struct {
	ExpiryHours int
}

type BookingConfig struct {
	// CreateTimeoutSeconds bounds the create path; generous because booking
	// creation may be slow.
	CreateTimeoutSeconds int
	Currency             string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("PROFILE_TTL_MINUTES", 30)
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24)
	viper.SetDefault("BOOKING_CREATE_TIMEOUT_SECONDS", 60)
	viper.SetDefault("CURRENCY", "ETB")
	viper.SetDefault("LOG_PATH", "logs/")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Addr:              viper.GetString("REDIS_ADDR"),
			Password:          viper.GetString("REDIS_PASS"),
			DB:                viper.GetInt("REDIS_DB"),
			ProfileTTLMinutes: viper.GetInt("PROFILE_TTL_MINUTES"),
		},
		Session: SessionConfig{
			ExpiryHours: viper.GetInt("SESSION_EXPIRY_HOURS"),
		},
		Booking: BookingConfig{
			CreateTimeoutSeconds: viper.GetInt("BOOKING_CREATE_TIMEOUT_SECONDS"),
			Currency:             viper.GetString("CURRENCY"),
		},
	}

	return config, nil
}
