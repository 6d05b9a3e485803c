package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Inbound auth
	CorrectUsername string
	CorrectPassword string

	// Source API connection
	RossumToken   string
	BaseRossumURL string

	// Result delivery
	ResultRossumURL string

	// Outbound HTTP
	HTTPTimeout time.Duration

	// Fetch retry policy
	RetryAttempts  int
	RetryBaseDelay time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8080"),

		CorrectUsername: os.Getenv("CORRECT_USERNAME"),
		CorrectPassword: os.Getenv("CORRECT_PASSWORD"),

		RossumToken:   os.Getenv("ROSSUM_TOKEN"),
		BaseRossumURL: os.Getenv("BASE_ROSSUM_URL"),

		ResultRossumURL: os.Getenv("RESULT_ROSSUM_URL"),

		HTTPTimeout: envDuration("HTTP_TIMEOUT", 30*time.Second),

		RetryAttempts:  envInt("RETRY_ATTEMPTS", 2),
		RetryBaseDelay: envDuration("RETRY_BASE_DELAY", 1*time.Second),
	}

	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}
	if cfg.RetryAttempts <= 0 {
		cfg.RetryAttempts = 2
	}
	if cfg.RetryBaseDelay <= 0 {
		cfg.RetryBaseDelay = 1 * time.Second
	}

	return cfg
}

func (c Config) Validate() error {
	if c.CorrectUsername == "" {
		return fmt.Errorf("CORRECT_USERNAME is required")
	}
	if c.CorrectPassword == "" {
		return fmt.Errorf("CORRECT_PASSWORD is required")
	}
	if c.RossumToken == "" {
		return fmt.Errorf("ROSSUM_TOKEN is required")
	}
	if c.BaseRossumURL == "" {
		return fmt.Errorf("BASE_ROSSUM_URL is required")
	}
	if c.ResultRossumURL == "" {
		return fmt.Errorf("RESULT_ROSSUM_URL is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
