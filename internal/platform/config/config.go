package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// urlPattern accepts http(s)://host[:port][/path] where host is a domain,
// an IPv4 address or "localhost". The scheme is required for CORS origins.
var urlPattern = regexp.MustCompile(`^https?://((?:[a-zA-Z0-9-]+\.)+[a-zA-Z]{2,}|(?:\d{1,3}\.){3}\d{1,3}|localhost)(?::\d+)?(/[a-zA-Z0-9-._~:!$&'()*+,;=%@]*)?$`)

var validEnvironments = map[string]bool{
	"dev":  true,
	"prod": true,
	"test": true,
}

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
	"fatal": true,
}

// Config holds the process-wide application configuration. It is constructed
// once at startup and never mutated afterwards.
type Config struct {
	Environment string
	Port        int
	DatabaseURL string
	CORSOrigins []string
	LogLevel    string
	AuditLevel  string
}

// IsProduction reports whether the process runs with the prod environment name.
func (c *Config) IsProduction() bool {
	return c.Environment == "prod"
}

// LoadConfig reads configuration from environment variables (a .env file is
// honored first, real environment variables win) and validates every value.
// Misconfiguration is an operator error: any violation returns a descriptive
// error and the caller is expected to abort before binding a socket.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("NODE_ENV", "dev")
	viper.SetDefault("PORT", 3000)
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("CORS_ORIGINS", "")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("AUDIT_LOG_LEVEL", "info")
	viper.AutomaticEnv()

	cfg := &Config{
		Environment: viper.GetString("NODE_ENV"),
		Port:        viper.GetInt("PORT"),
		DatabaseURL: viper.GetString("DATABASE_URL"),
		LogLevel:    strings.ToLower(viper.GetString("LOG_LEVEL")),
		AuditLevel:  strings.ToLower(viper.GetString("AUDIT_LOG_LEVEL")),
	}

	if !validEnvironments[cfg.Environment] {
		return nil, fmt.Errorf("NODE_ENV must be one of dev, prod, test; got %q", cfg.Environment)
	}
	if cfg.Port < 1024 || cfg.Port > 65535 {
		return nil, fmt.Errorf("PORT must be between 1024 and 65535; got %d", cfg.Port)
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if !validLogLevels[cfg.LogLevel] {
		return nil, fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, fatal; got %q", cfg.LogLevel)
	}
	if !validLogLevels[cfg.AuditLevel] {
		return nil, fmt.Errorf("AUDIT_LOG_LEVEL must be one of trace, debug, info, warn, error, fatal; got %q", cfg.AuditLevel)
	}

	origins, err := parseCORSOrigins(viper.GetString("CORS_ORIGINS"))
	if err != nil {
		return nil, err
	}
	cfg.CORSOrigins = origins

	return cfg, nil
}

// parseCORSOrigins splits and validates the comma-separated origin allow-list.
func parseCORSOrigins(raw string) ([]string, error) {
	if raw == "" {
		return nil, fmt.Errorf("CORS_ORIGINS is required")
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if !urlPattern.MatchString(origin) {
			return nil, fmt.Errorf("CORS_ORIGINS must be a comma-separated list of valid URLs; got %q", origin)
		}
		origins = append(origins, origin)
	}
	return origins, nil
}
