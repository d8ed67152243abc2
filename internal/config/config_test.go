package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "laurentius", cfg.Variant)
	assert.Equal(t, 1, cfg.ExchangeRate)
	assert.Equal(t, 6, cfg.SearchDepth)
	assert.Equal(t, 20, cfg.TTPow)
	assert.Equal(t, 100, cfg.Contempt)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("COERCEO_VARIANT", "ocius")
	t.Setenv("COERCEO_SEARCH_DEPTH", "3")
	t.Setenv("COERCEO_EXCHANGE_RATE", "2")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "ocius", cfg.Variant)
	assert.Equal(t, 3, cfg.SearchDepth)
	assert.Equal(t, 2, cfg.ExchangeRate)
}
