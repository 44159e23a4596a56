package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	ServerAddress       string        `mapstructure:"SERVER_ADDRESS"`
	DBSource            string        `mapstructure:"DB_SOURCE"`
	GoogleMapsAPIKey    string        `mapstructure:"GOOGLE_MAPS_API_KEY"`
	ProviderEndpoint    string        `mapstructure:"PROVIDER_ENDPOINT"`
	ProviderTimeout     time.Duration `mapstructure:"PROVIDER_TIMEOUT"`
	ProviderRateLimit   float64       `mapstructure:"PROVIDER_RATE_LIMIT"`
	ProviderBurst       int           `mapstructure:"PROVIDER_BURST"`
	CacheTTL            time.Duration `mapstructure:"CACHE_TTL"`
	SimilarityThreshold float64       `mapstructure:"SIMILARITY_THRESHOLD"`
	MaxAddressLength    int           `mapstructure:"MAX_ADDRESS_LENGTH"`
	LogLevel            string        `mapstructure:"LOG_LEVEL"`
	GinMode             string        `mapstructure:"GIN_MODE"`
}

var defaults = map[string]any{
	"SERVER_ADDRESS":       "0.0.0.0:8080",
	"DB_SOURCE":            "",
	"GOOGLE_MAPS_API_KEY":  "",
	"PROVIDER_ENDPOINT":    "https://maps.googleapis.com/maps/api/geocode/json",
	"PROVIDER_TIMEOUT":     "10s",
	"PROVIDER_RATE_LIMIT":  10.0,
	"PROVIDER_BURST":       5,
	"CACHE_TTL":            "1h",
	"SIMILARITY_THRESHOLD": 0.6,
	"MAX_ADDRESS_LENGTH":   200,
	"LOG_LEVEL":            "info",
	"GIN_MODE":             "release",
}

// LoadConfig reads app.env from path, if present, and overlays environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("config: failed to read config file: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("config: failed to decode config: %w", err)
	}

	return config, config.Validate()
}

// Validate checks the values a running server cannot do without.
func (c Config) Validate() error {
	if c.GoogleMapsAPIKey == "" {
		return errors.New("config: GOOGLE_MAPS_API_KEY is required")
	}
	if c.SimilarityThreshold <= 0 || c.SimilarityThreshold >= 1 {
		return fmt.Errorf("config: SIMILARITY_THRESHOLD must be between 0 and 1, got %v", c.SimilarityThreshold)
	}
	if c.ProviderTimeout <= 0 {
		return fmt.Errorf("config: PROVIDER_TIMEOUT must be positive, got %s", c.ProviderTimeout)
	}
	return nil
}
