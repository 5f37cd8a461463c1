/*
Package configs loads the application configuration from environment variables.

Development defaults keep the server runnable with no environment at all;
production requires an explicit JWT secret.
*/
package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// AppConfig holds every runtime setting the server needs.
// All values come from environment variables.
type AppConfig struct {
	// Environment is "development" or "production".
	Environment string

	// Port is the TCP port the HTTP server listens on.
	Port int

	// AllowedOrigins lists origins permitted for CORS and WebSocket upgrades.
	AllowedOrigins []string

	// JWTSecret signs guest identity tokens.
	JWTSecret string
}

// LoadConfig reads and validates the configuration from the environment.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}

	cfg.Environment = os.Getenv("ENVIRONMENT")
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT environment variable: %w", err)
	}
	cfg.Port = port

	if cfg.Port < 1024 || cfg.Port > 65535 {
		return nil, fmt.Errorf("port number %d is outside the allowed range (1024-65535)", cfg.Port)
	}

	originsStr := os.Getenv("ALLOWED_ORIGINS")
	if originsStr != "" {
		for _, origin := range strings.Split(originsStr, ",") {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
			}
		}
	} else {
		cfg.AllowedOrigins = []string{}
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if cfg.Environment == "development" {
		if jwtSecret == "" {
			jwtSecret = "your_default_insecure_secret_key_change_me"
		}
	} else {
		if jwtSecret == "" {
			return nil, fmt.Errorf("JWT_SECRET environment variable is required in %s environment", cfg.Environment)
		}
	}
	cfg.JWTSecret = jwtSecret

	return cfg, nil
}
