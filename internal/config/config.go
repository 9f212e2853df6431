package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN returns the GORM/pgx connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// GeoConfig selects and configures the geocoding/routing providers.
type GeoConfig struct {
	// Provider is "osrm" or "google".
	Provider         string
	OSRMBaseURL      string
	NominatimBaseURL string
	GoogleAPIKey     string
}

// MapConfig holds map-page defaults and the delivery fee rate.
type MapConfig struct {
	DefaultLat      float64
	DefaultLng      float64
	FeePerKm        int64
	BookingBasePath string
}

// ServiceConfig holds all configuration for the rental map service.
type ServiceConfig struct {
	Port         string
	AppEnv       string
	DBConfig     DatabaseConfig
	KafkaBrokers []string
	JWTSecret    string
	GeoConfig    GeoConfig
	MapConfig    MapConfig
}

// Load reads configuration from the environment with the RENTAL_ prefix.
func Load() (*ServiceConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("RENTAL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("SERVICE_PORT", "8080")
	v.SetDefault("APP_ENV", "development")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "rental_map")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("JWT_SECRET", "")

	v.SetDefault("GEO_PROVIDER", "osrm")
	v.SetDefault("OSRM_BASE_URL", "https://router.project-osrm.org")
	v.SetDefault("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org")
	v.SetDefault("GOOGLE_MAPS_API_KEY", "")

	// Ho Chi Minh City, the original deployment's viewport.
	v.SetDefault("MAP_DEFAULT_LAT", 10.762622)
	v.SetDefault("MAP_DEFAULT_LNG", 106.660172)
	v.SetDefault("DELIVERY_FEE_PER_KM", 30000)
	v.SetDefault("BOOKING_BASE_PATH", "/thue-xe")

	cfg := &ServiceConfig{
		Port:   ":" + v.GetString("SERVICE_PORT"),
		AppEnv: v.GetString("APP_ENV"),
		DBConfig: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		KafkaBrokers: strings.Split(v.GetString("KAFKA_BROKERS"), ","),
		JWTSecret:    v.GetString("JWT_SECRET"),
		GeoConfig: GeoConfig{
			Provider:         v.GetString("GEO_PROVIDER"),
			OSRMBaseURL:      v.GetString("OSRM_BASE_URL"),
			NominatimBaseURL: v.GetString("NOMINATIM_BASE_URL"),
			GoogleAPIKey:     v.GetString("GOOGLE_MAPS_API_KEY"),
		},
		MapConfig: MapConfig{
			DefaultLat:      v.GetFloat64("MAP_DEFAULT_LAT"),
			DefaultLng:      v.GetFloat64("MAP_DEFAULT_LNG"),
			FeePerKm:        v.GetInt64("DELIVERY_FEE_PER_KM"),
			BookingBasePath: v.GetString("BOOKING_BASE_PATH"),
		},
	}

	if cfg.AppEnv != "development" && cfg.JWTSecret == "" {
		return nil, fmt.Errorf("RENTAL_JWT_SECRET is required outside development")
	}
	if cfg.GeoConfig.Provider == "google" && cfg.GeoConfig.GoogleAPIKey == "" {
		return nil, fmt.Errorf("RENTAL_GOOGLE_MAPS_API_KEY is required when GEO_PROVIDER=google")
	}

	return cfg, nil
}
