package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meera-dev/stylescrap/internal/models"
)

func TestInitConfigFlagOverridesEnvBothDirections(t *testing.T) {
	t.Setenv("STYLESCRAP_HEADLESS", "false")
	t.Setenv("STYLESCRAP_SITE", "nykaa")

	// Env only: the flag defaults must not clobber the env values.
	initConfig()
	assert.False(t, cfg.Headless)
	assert.Equal(t, "nykaa", cfg.DefaultSite)

	// An explicit flag wins even when it matches the flag default.
	require.NoError(t, rootCmd.PersistentFlags().Set("headless", "true"))
	require.NoError(t, rootCmd.PersistentFlags().Set("site", "myntra"))
	initConfig()
	assert.True(t, cfg.Headless)
	assert.Equal(t, "myntra", cfg.DefaultSite)
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	rec := models.NewProductRecord("myntra", "shirt")

	require.NoError(t, printJSON(&buf, rec))
	assert.Contains(t, buf.String(), `"search_keyword": "shirt"`)

	assert.Error(t, printJSON(&buf, make(chan int)), "unencodable values must surface an error")
}
