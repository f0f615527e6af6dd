package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	Database DatabaseConfig

	// Server configuration
	Server ServerConfig

	// Security configuration
	Security SecurityConfig

	// CORS configuration
	CORS CORSConfig

	// Logging configuration
	Logging LoggingConfig

	// Upstream place providers
	Providers ProvidersConfig

	// Search pipeline tuning
	Search SearchConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL      string // Full PostgreSQL URL
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port int
	Host string
}

// SecurityConfig holds security-related settings
type SecurityConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// ProvidersConfig holds credentials and endpoints of the geo providers.
type ProvidersConfig struct {
	GeoapifyKey        string
	GeoapifyBaseURL    string
	OpenTripMapKey     string
	OpenTripMapBaseURL string
	Timeout            time.Duration
}

// SearchConfig tunes the attraction search pipeline.
type SearchConfig struct {
	ResultLimit       int
	DefaultRadius     int
	DefaultCategory   string
	EnrichConcurrency int // 0 means one worker per candidate
}

// Load reads configuration from .env files and environment variables
func Load() (*Config, error) {
	_ = godotenv.Load("config/local.env")
	_ = godotenv.Load()

	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("PORT", 8080)
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("GEOAPIFY_BASE_URL", "https://api.geoapify.com")
	v.SetDefault("OPENTRIPMAP_BASE_URL", "https://api.opentripmap.com/0.1/en")
	v.SetDefault("PROVIDER_TIMEOUT", "10s")
	v.SetDefault("SEARCH_RESULT_LIMIT", 20)
	v.SetDefault("SEARCH_DEFAULT_RADIUS", 5000)
	v.SetDefault("SEARCH_DEFAULT_CATEGORY", "tourism.attraction")
	v.SetDefault("SEARCH_ENRICH_CONCURRENCY", 0)

	v.AutomaticEnv()
	return v
}

// FromViper builds and validates a Config from an already-populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{}

	if err := cfg.loadDatabase(v); err != nil {
		return nil, fmt.Errorf("load database config: %w", err)
	}

	cfg.Server.Port = v.GetInt("PORT")
	cfg.Server.Host = v.GetString("HOST")

	cfg.Security.JWTSecret = v.GetString("JWT_SECRET")
	cfg.Security.TokenTTL = v.GetDuration("TOKEN_TTL")

	cfg.CORS.AllowedOrigins = parseList(v.GetString("CORS_ALLOWED_ORIGINS"))

	cfg.Logging.Level = strings.ToLower(v.GetString("LOG_LEVEL"))
	cfg.Logging.Format = strings.ToLower(v.GetString("LOG_FORMAT"))

	cfg.Providers = ProvidersConfig{
		GeoapifyKey:        v.GetString("GEOAPIFY_KEY"),
		GeoapifyBaseURL:    strings.TrimRight(v.GetString("GEOAPIFY_BASE_URL"), "/"),
		OpenTripMapKey:     v.GetString("OPENTRIPMAP_API_KEY"),
		OpenTripMapBaseURL: strings.TrimRight(v.GetString("OPENTRIPMAP_BASE_URL"), "/"),
		Timeout:            v.GetDuration("PROVIDER_TIMEOUT"),
	}

	cfg.Search = SearchConfig{
		ResultLimit:       v.GetInt("SEARCH_RESULT_LIMIT"),
		DefaultRadius:     v.GetInt("SEARCH_DEFAULT_RADIUS"),
		DefaultCategory:   v.GetString("SEARCH_DEFAULT_CATEGORY"),
		EnrichConcurrency: v.GetInt("SEARCH_ENRICH_CONCURRENCY"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadDatabase(v *viper.Viper) error {
	c.Database.URL = v.GetString("DATABASE_URL")
	if c.Database.URL != "" {
		return nil
	}

	c.Database.Host = v.GetString("DB_HOST")
	c.Database.User = v.GetString("DB_USER")
	c.Database.Password = v.GetString("DB_PASSWORD")
	c.Database.Name = v.GetString("DB_NAME")
	c.Database.SSLMode = v.GetString("DB_SSLMODE")

	c.Database.Port = 5432
	if raw := v.GetString("DB_PORT"); raw != "" {
		port := v.GetInt("DB_PORT")
		if port == 0 {
			return fmt.Errorf("invalid DB_PORT %q", raw)
		}
		c.Database.Port = port
	}

	if c.Database.Host != "" && c.Database.User != "" && c.Database.Name != "" {
		c.Database.URL = fmt.Sprintf(
			"postgresql://%s:%s@%s:%d/%s?sslmode=%s",
			c.Database.User,
			c.Database.Password,
			c.Database.Host,
			c.Database.Port,
			c.Database.Name,
			c.Database.SSLMode,
		)
	}
	return nil
}

// Validate checks that all required configuration is present and valid
func (c *Config) Validate() error {
	var errors []string

	if c.Database.URL == "" {
		errors = append(errors, "DATABASE_URL is required (or DB_HOST, DB_USER, DB_NAME)")
	}

	if c.Security.JWTSecret == "" {
		errors = append(errors, "JWT_SECRET is required")
	} else if len(c.Security.JWTSecret) < 16 {
		errors = append(errors, "JWT_SECRET must be at least 16 characters")
	}
	if c.Security.TokenTTL <= 0 {
		errors = append(errors, "TOKEN_TTL must be a positive duration")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errors = append(errors, "PORT must be between 1 and 65535")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		errors = append(errors, "LOG_LEVEL must be one of: debug, info, warn, error")
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		errors = append(errors, "LOG_FORMAT must be one of: json, text")
	}

	if c.Providers.GeoapifyKey == "" {
		errors = append(errors, "GEOAPIFY_KEY is required")
	}
	if c.Providers.Timeout <= 0 {
		errors = append(errors, "PROVIDER_TIMEOUT must be a positive duration")
	}

	if c.Search.ResultLimit < 1 {
		errors = append(errors, "SEARCH_RESULT_LIMIT must be at least 1")
	}
	if c.Search.DefaultRadius < 1 {
		errors = append(errors, "SEARCH_DEFAULT_RADIUS must be at least 1")
	}
	if c.Search.EnrichConcurrency < 0 {
		errors = append(errors, "SEARCH_ENRICH_CONCURRENCY must not be negative")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func parseList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
