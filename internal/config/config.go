package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Database    DatabaseConfig
	Shopify     ShopifyConfig
	Partner     PartnerConfig
	// BridgeAPIKey authenticates inbound /api requests. Empty disables the
	// check entirely (intentional: local installs run without a shared key).
	BridgeAPIKey string
	LogLevel     string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// ShopifyConfig carries the app credentials used for the refresh-token
// grant against the shop's OAuth endpoint.
type ShopifyConfig struct {
	APIKey     string
	APISecret  string
	APIVersion string
}

// PartnerConfig is used to call the partner platform's webhook endpoint
// for the connect/disconnect handshake.
type PartnerConfig struct {
	BaseURL string // e.g. https://api.partner-platform.example; empty means connect/disconnect return 503
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
			Host:     getEnvOrViper("DB_HOST", "localhost"),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "shopify_bridge"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Shopify: ShopifyConfig{
			APIKey:     strings.TrimSpace(getEnvOrViper("SHOPIFY_API_KEY", "")),
			APISecret:  strings.TrimSpace(getEnvOrViper("SHOPIFY_API_SECRET", "")),
			APIVersion: getEnvOrViper("SHOPIFY_API_VERSION", "2025-01"),
		},
		Partner: PartnerConfig{
			BaseURL: strings.TrimSpace(getEnvOrViper("PARTNER_API_URL", "")),
		},
		BridgeAPIKey: strings.TrimSpace(getEnvOrViper("BRIDGE_API_KEY", "")),
		LogLevel:     getEnvOrViper("LOG_LEVEL", "info"),
	}

	// Validate required fields
	if cfg.Shopify.APIKey == "" {
		return nil, fmt.Errorf("SHOPIFY_API_KEY is required")
	}
	if cfg.Shopify.APISecret == "" {
		return nil, fmt.Errorf("SHOPIFY_API_SECRET is required")
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
