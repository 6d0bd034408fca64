package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"club_harvester/internal/config"
)

func TestParseOptions_Defaults(t *testing.T) {
	opts, err := parseOptions(nil)

	require.NoError(t, err)
	require.NotNil(t, opts)
	assert.Equal(t, "config.yaml", opts.Config)
	assert.False(t, opts.DryRun)
	assert.False(t, opts.Schedule)
}

func TestParseOptions_Overrides(t *testing.T) {
	opts, err := parseOptions([]string{"--config", "prod.yaml", "--dry-run", "--news-limit", "5", "--max-requests", "40", "--schedule"})
	require.NoError(t, err)

	cfg := &config.Config{
		Sync: config.SyncConfig{NewsLimit: 30},
		HTTP: config.HTTPConfig{MaxRequestsPerRun: 120},
	}
	applyOverrides(cfg, opts)

	assert.Equal(t, "prod.yaml", opts.Config)
	assert.True(t, opts.Schedule)
	assert.True(t, cfg.Sync.DryRun)
	assert.Equal(t, 5, cfg.Sync.NewsLimit)
	assert.Equal(t, 40, cfg.HTTP.MaxRequestsPerRun)
}

func TestApplyOverrides_KeepsConfigWhenUnset(t *testing.T) {
	opts, err := parseOptions([]string{})
	require.NoError(t, err)

	cfg := &config.Config{
		Sync: config.SyncConfig{NewsLimit: 30, DryRun: true},
		HTTP: config.HTTPConfig{MaxRequestsPerRun: 120},
	}
	applyOverrides(cfg, opts)

	assert.True(t, cfg.Sync.DryRun)
	assert.Equal(t, 30, cfg.Sync.NewsLimit)
	assert.Equal(t, 120, cfg.HTTP.MaxRequestsPerRun)
}

func TestParseOptions_UnknownFlag(t *testing.T) {
	_, err := parseOptions([]string{"--bogus"})

	assert.Error(t, err)
}
