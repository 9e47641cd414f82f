package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server
	Port        string
	CORSOrigins []string
	Env         string

	// Auth0
	Auth0Domain   string
	Auth0Audience string

	// Data sources
	DataSource  string // "airtable" or "postgres"
	DatabaseURL string
	Airtable    AirtableConfig

	// Metrics cache expiry
	CacheTTL time.Duration

	// Apartments visible to the "user" role (admin sees everything)
	UserApartments []string
}

// AirtableConfig holds Airtable credentials and table location
type AirtableConfig struct {
	APIKey    string
	BaseID    string
	TableName string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cacheTTLSeconds, err := strconv.Atoi(getEnv("CACHE_TTL_SECONDS", "300"))
	if err != nil {
		return nil, fmt.Errorf("CACHE_TTL_SECONDS must be an integer: %w", err)
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		CORSOrigins:   strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ","),
		Env:           getEnv("ENV", "development"),
		Auth0Domain:   getEnv("AUTH0_DOMAIN", ""),
		Auth0Audience: getEnv("AUTH0_AUDIENCE", ""),
		DataSource:    getEnv("DATA_SOURCE", "airtable"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		Airtable: AirtableConfig{
			APIKey:    getEnv("AIRTABLE_API_KEY", ""),
			BaseID:    getEnv("AIRTABLE_BASE_ID", ""),
			TableName: getEnv("AIRTABLE_TABLE", "Reservas"),
		},
		CacheTTL:       time.Duration(cacheTTLSeconds) * time.Second,
		UserApartments: splitNonEmpty(getEnv("USER_APARTMENTS", "Trindade 1,Trindade 2,Trindade 4")),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Auth0Domain == "" {
		return fmt.Errorf("AUTH0_DOMAIN is required")
	}
	if c.Auth0Audience == "" {
		return fmt.Errorf("AUTH0_AUDIENCE is required")
	}
	switch c.DataSource {
	case "airtable":
		if c.Airtable.APIKey == "" || c.Airtable.BaseID == "" {
			return fmt.Errorf("AIRTABLE_API_KEY and AIRTABLE_BASE_ID are required when DATA_SOURCE=airtable")
		}
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when DATA_SOURCE=postgres")
		}
	default:
		return fmt.Errorf("DATA_SOURCE must be 'airtable' or 'postgres', got %q", c.DataSource)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitNonEmpty(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
