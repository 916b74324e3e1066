package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "myntra", cfg.DefaultSite)
	assert.True(t, cfg.Headless)
	assert.True(t, cfg.RespectRobots)
	assert.Equal(t, "products", cfg.OutputStem)
	assert.Equal(t, "8080", cfg.HTTPPort)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("STYLESCRAP_SITE", "nykaa")
	t.Setenv("STYLESCRAP_HEADLESS", "false")
	t.Setenv("STYLESCRAP_MAX_PRODUCTS", "25")
	t.Setenv("STYLESCRAP_WAIT_TIMEOUT", "30s")
	t.Setenv("STYLESCRAP_RATE_PER_SECOND", "0.5")
	t.Setenv("PORT", "9999")

	cfg := DefaultConfig()
	cfg.LoadFromEnv()

	assert.Equal(t, "nykaa", cfg.DefaultSite)
	assert.False(t, cfg.Headless)
	assert.Equal(t, 25, cfg.MaxProducts)
	assert.Equal(t, 30*time.Second, cfg.WaitTimeout)
	assert.Equal(t, 0.5, cfg.RatePerSecond)
	assert.Equal(t, "9999", cfg.HTTPPort)
}

func TestLoadFromEnvIgnoresInvalidValues(t *testing.T) {
	t.Setenv("STYLESCRAP_MAX_PRODUCTS", "lots")
	t.Setenv("STYLESCRAP_WAIT_TIMEOUT", "soon")

	cfg := DefaultConfig()
	cfg.LoadFromEnv()

	assert.Equal(t, 10, cfg.MaxProducts)
	assert.Equal(t, 10*time.Second, cfg.WaitTimeout)
}
