package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// valid returns defaults completed with the settings that have no default.
func valid() *Config {
	cfg := New()
	cfg.SearchEndpoint = "https://search.example.net"
	cfg.SearchAPIKey = "key"
	cfg.SearchIndex = "kb"
	cfg.AIHost = "http://localhost:11434"
	return cfg
}

func TestConfig_Defaults(t *testing.T) {
	cfg := New()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 3, cfg.SearchTop)
	assert.Equal(t, 5, cfg.HistoryLimit)
	assert.InDelta(t, 0.8, cfg.RelevanceFraction, 1e-9)
	assert.Equal(t, 10, cfg.EnrichBatchSize)
	assert.Equal(t, 100, cfg.EnrichMaxItems)
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, valid().Validate())

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"missing addr", func(c *Config) { c.Addr = "" }, ErrMissingSetting},
		{"missing store path", func(c *Config) { c.StorePath = "" }, ErrMissingSetting},
		{"missing search endpoint", func(c *Config) { c.SearchEndpoint = "" }, ErrMissingSetting},
		{"missing search key", func(c *Config) { c.SearchAPIKey = "" }, ErrMissingSetting},
		{"missing search index", func(c *Config) { c.SearchIndex = "" }, ErrMissingSetting},
		{"missing ai host", func(c *Config) { c.AIHost = "" }, ErrMissingSetting},
		{"relevance fraction zero", func(c *Config) { c.RelevanceFraction = 0 }, ErrInvalidSetting},
		{"relevance fraction above one", func(c *Config) { c.RelevanceFraction = 1.5 }, ErrInvalidSetting},
		{"search top zero", func(c *Config) { c.SearchTop = 0 }, ErrInvalidSetting},
		{"negative history limit", func(c *Config) { c.HistoryLimit = -1 }, ErrInvalidSetting},
		{"zero enrich interval", func(c *Config) { c.EnrichIntervalSeconds = 0 }, ErrInvalidSetting},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestConfig_Validate_InMemoryStoreNeedsNoPath(t *testing.T) {
	cfg := valid()
	cfg.StorePath = ""
	cfg.StoreInMemory = true
	assert.NoError(t, cfg.Validate())
}
