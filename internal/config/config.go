// Package config provides configuration management for the fleet
// insights service.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/fleetsight/insights/internal/analytics"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Redis     RedisConfig
	Analytics AnalyticsConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port string
}

// AuthConfig holds token validation configuration. Tokens are issued by
// the fleet login service; this service only validates them against the
// shared secret.
type AuthConfig struct {
	JWTSecret         string
	JWTAccessTokenTTL time.Duration
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	URL                   string
	Host                  string
	Port                  string
	Name                  string
	User                  string
	Password              string
	SSLMode               string
	MaxConnections        int
	MaxIdleConnections    int
	ConnectionMaxLifetime time.Duration
}

// RedisConfig holds the optional snapshot cache configuration. An empty
// Addr disables the cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// AnalyticsConfig exposes the analytics thresholds as environment
// overrides, plus the packet window fetched per device.
type AnalyticsConfig struct {
	TripStartSpeedKmh   float64
	TripStopSpeedKmh    float64
	TripIdlePackets     int
	OverspeedKmh        float64
	HighTempC           float64
	LowBatteryPct       float64
	GoodBatteryPct      float64
	HangAfter           time.Duration
	KeepZeroCoordinates bool
	PacketWindow        int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	defaults := analytics.DefaultThresholds()

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			URL:                   os.Getenv("DATABASE_URL"),
			Host:                  getEnv("DB_HOST", "localhost"),
			Port:                  getEnv("DB_PORT", "5432"),
			Name:                  getEnv("DB_NAME", "fleet_dev"),
			User:                  getEnv("DB_USER", "fleet_user"),
			Password:              getEnv("DB_PASSWORD", "fleet_pass"),
			SSLMode:               getEnv("DB_SSLMODE", "disable"),
			MaxConnections:        getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			MaxIdleConnections:    getEnvAsInt("DB_MAX_IDLE_CONNECTIONS", 5),
			ConnectionMaxLifetime: getEnvAsDuration("DB_CONNECTION_MAX_LIFETIME", "5m"),
		},
		Auth: AuthConfig{
			JWTSecret:         GetSecret("JWT_SECRET", "dev-secret-key-change-in-production"),
			JWTAccessTokenTTL: getEnvAsDuration("JWT_ACCESS_TOKEN_TTL", "1h"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: GetSecret("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			TTL:      getEnvAsDuration("SNAPSHOT_CACHE_TTL", "30s"),
		},
		Analytics: AnalyticsConfig{
			TripStartSpeedKmh:   getEnvAsFloat("ANALYTICS_TRIP_START_SPEED_KMH", defaults.TripStartSpeedKmh),
			TripStopSpeedKmh:    getEnvAsFloat("ANALYTICS_TRIP_STOP_SPEED_KMH", defaults.TripStopSpeedKmh),
			TripIdlePackets:     getEnvAsInt("ANALYTICS_TRIP_IDLE_PACKETS", defaults.TripIdlePackets),
			OverspeedKmh:        getEnvAsFloat("ANALYTICS_OVERSPEED_KMH", defaults.OverspeedKmh),
			HighTempC:           getEnvAsFloat("ANALYTICS_HIGH_TEMP_C", defaults.HighTempC),
			LowBatteryPct:       getEnvAsFloat("ANALYTICS_LOW_BATTERY_PCT", defaults.LowBatteryPct),
			GoodBatteryPct:      getEnvAsFloat("ANALYTICS_GOOD_BATTERY_PCT", defaults.GoodBatteryPct),
			HangAfter:           getEnvAsDuration("ANALYTICS_HANG_AFTER", "1h"),
			KeepZeroCoordinates: getEnvAsBool("ANALYTICS_KEEP_ZERO_COORDINATES", false),
			PacketWindow:        getEnvAsInt("ANALYTICS_PACKET_WINDOW", 5000),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	if c.Analytics.TripIdlePackets < 1 {
		return fmt.Errorf("ANALYTICS_TRIP_IDLE_PACKETS must be at least 1, got %d", c.Analytics.TripIdlePackets)
	}
	if c.Analytics.TripStopSpeedKmh > c.Analytics.TripStartSpeedKmh {
		return fmt.Errorf("trip stop speed (%.1f) must not exceed trip start speed (%.1f)",
			c.Analytics.TripStopSpeedKmh, c.Analytics.TripStartSpeedKmh)
	}
	if c.Analytics.PacketWindow < 1 {
		return fmt.Errorf("ANALYTICS_PACKET_WINDOW must be positive, got %d", c.Analytics.PacketWindow)
	}
	return nil
}

// Thresholds converts the analytics configuration into the threshold
// set consumed by the analytics package.
func (a *AnalyticsConfig) Thresholds() analytics.Thresholds {
	return analytics.Thresholds{
		TripStartSpeedKmh:   a.TripStartSpeedKmh,
		TripStopSpeedKmh:    a.TripStopSpeedKmh,
		TripIdlePackets:     a.TripIdlePackets,
		OverspeedKmh:        a.OverspeedKmh,
		HighTempC:           a.HighTempC,
		LowBatteryPct:       a.LowBatteryPct,
		GoodBatteryPct:      a.GoodBatteryPct,
		HangAfter:           a.HangAfter,
		KeepZeroCoordinates: a.KeepZeroCoordinates,
	}
}

// ConnectionString returns the database connection string
func (d *DatabaseConfig) ConnectionString() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat gets an environment variable as a float or returns a default value
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsBool gets an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration gets an environment variable as a duration or returns a default value
func getEnvAsDuration(key, defaultValue string) time.Duration {
	value := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
