package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	AdminToken        string `mapstructure:"ADMIN_TOKEN"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr          string `mapstructure:"REDIS_ADDR"`
	RedisPassword      string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB       int    `mapstructure:"REDIS_CACHE_DB"`
	RedisReminderQueue int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	// Scheduling knobs. Grid and buffer are platform-wide; the original
	// behaviour had both implicit at 30 minutes, kept configurable here.
	SlotGridMinutes     int     `mapstructure:"SLOT_GRID_MINUTES"`
	TravelBufferMinutes int     `mapstructure:"TRAVEL_BUFFER_MINUTES"`
	MaxServiceRadiusKm  float64 `mapstructure:"MAX_SERVICE_RADIUS_KM"`
	MaxBookingsPerDay   int     `mapstructure:"MAX_BOOKINGS_PER_DAY"`
	RouteOptMaxPasses   int     `mapstructure:"ROUTE_OPT_MAX_PASSES"`

	// Firebase service-account JSON path for push notifications.
	FirebaseCredFile string `mapstructure:"FIREBASE_CRED_FILE"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("ADMIN_TOKEN", "")
	viper.SetDefault("SLOT_GRID_MINUTES", 30)
	viper.SetDefault("TRAVEL_BUFFER_MINUTES", 30)
	viper.SetDefault("MAX_SERVICE_RADIUS_KM", 40)
	viper.SetDefault("MAX_BOOKINGS_PER_DAY", 6)
	viper.SetDefault("ROUTE_OPT_MAX_PASSES", 10)
	viper.SetDefault("FIREBASE_CRED_FILE", "")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
