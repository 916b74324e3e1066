package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// General
	DefaultSite   string
	Headless      bool
	RespectRobots bool
	DelayProfile  string // "cautious", "normal", "aggressive"

	// Crawl behavior
	MaxProducts int
	WaitTimeout time.Duration

	// Rate limiting
	RatePerSecond float64
	RateBurst     int

	// Output
	OutputStem string

	// HTTP server
	HTTPPort string
	APIKey   string
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		DefaultSite:   "myntra",
		Headless:      true,
		RespectRobots: true,
		DelayProfile:  "normal",
		MaxProducts:   10,
		WaitTimeout:   10 * time.Second,
		RatePerSecond: 1.0,
		RateBurst:     2,
		OutputStem:    "products",
		HTTPPort:      "8080",
	}
}

// LoadFromEnv loads .env (if present) then overrides config from environment
// variables.
func (c *Config) LoadFromEnv() {
	// Auto-load .env file; silently ignored if missing
	_ = godotenv.Load()

	if v := os.Getenv("STYLESCRAP_SITE"); v != "" {
		c.DefaultSite = v
	}
	if v := os.Getenv("STYLESCRAP_HEADLESS"); v == "false" {
		c.Headless = false
	}
	if v := os.Getenv("STYLESCRAP_RESPECT_ROBOTS"); v == "false" {
		c.RespectRobots = false
	}
	if v := os.Getenv("STYLESCRAP_DELAY_PROFILE"); v != "" {
		c.DelayProfile = v
	}
	if v := os.Getenv("STYLESCRAP_MAX_PRODUCTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxProducts = n
		}
	}
	if v := os.Getenv("STYLESCRAP_WAIT_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.WaitTimeout = d
		}
	}
	if v := os.Getenv("STYLESCRAP_RATE_PER_SECOND"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.RatePerSecond = f
		}
	}
	if v := os.Getenv("STYLESCRAP_RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RateBurst = n
		}
	}
	if v := os.Getenv("STYLESCRAP_OUTPUT"); v != "" {
		c.OutputStem = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.HTTPPort = v
	}
	if v := os.Getenv("STYLESCRAP_API_KEY"); v != "" {
		c.APIKey = v
	}
}
