package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var ErrEmptyEnvironmentVariable = errors.New("empty environment variable")

// Config holds all application configuration
type Config struct {
	ReferralService ReferralServiceConfig
	Auth            AuthConfig
	Crypto          CryptoConfig
	Server          ServerConfig
}

// ReferralServiceConfig holds settings for the backend referral service
type ReferralServiceConfig struct {
	// BaseURL of the referral service, e.g. https://referral.example.gov.uk
	BaseURL string
	// ShowTeam controls whether the referrer's team is exposed to callers
	ShowTeam bool
}

// AuthConfig holds authentication-related configuration
type AuthConfig struct {
	JWTSecret string
}

// CryptoConfig holds field-encryption key material.
// Either a 64-char hex key or a passphrase+salt pair must be set.
type CryptoConfig struct {
	KeyHex     string
	Passphrase string
	Salt       string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int
}

// Load reads and validates all required environment variables
func Load() (*Config, error) {
	// Load env.local in non-production environments
	if os.Getenv("GO_ENV") != "production" {
		if err := godotenv.Load("env.local"); err != nil {
			return nil, fmt.Errorf("failed to load env.local: %w", err)
		}
	}

	cfg := &Config{}

	var err error
	if cfg.ReferralService.BaseURL, err = requireEnv("REFERRAL_SERVICE_URL"); err != nil {
		return nil, err
	}
	cfg.ReferralService.ShowTeam = os.Getenv("SHOW_TEAM") == "true"

	if cfg.Auth.JWTSecret, err = requireEnv("JWT_SECRET"); err != nil {
		return nil, err
	}

	// Key material: a raw hex key wins, otherwise passphrase+salt.
	cfg.Crypto.KeyHex = os.Getenv("FIELD_ENCRYPTION_KEY")
	if cfg.Crypto.KeyHex == "" {
		if cfg.Crypto.Passphrase, err = requireEnv("FIELD_ENCRYPTION_PASSPHRASE"); err != nil {
			return nil, err
		}
		if cfg.Crypto.Salt, err = requireEnv("FIELD_ENCRYPTION_SALT"); err != nil {
			return nil, err
		}
	}

	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	if cfg.Server.Port, err = strconv.Atoi(portStr); err != nil {
		return nil, fmt.Errorf("invalid PORT value %q: %w", portStr, err)
	}

	return cfg, nil
}

func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyEnvironmentVariable, key)
	}
	return value, nil
}
