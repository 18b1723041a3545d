package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centsible-dev/centsible/internal/decode"
)

func TestDefault(t *testing.T) {
	cfg := Default("household")
	assert.Equal(t, "household", cfg.Profile.Name)
	assert.Equal(t, "USD", cfg.Profile.Currency)
	assert.Equal(t, 0.95, cfg.Thresholds.AutoAccept)
	assert.Equal(t, 0.70, cfg.Thresholds.ReviewFlag)
	assert.Equal(t, 6, cfg.Trends.WindowMonths)
	assert.True(t, cfg.Git.AutoCommit)
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "centsible.yaml")

	cfg := Default("household")
	cfg.Trends.WindowMonths = 12
	cfg.Presets = []decode.ColumnMapping{
		{Name: "mybank", Date: "trans date", Description: "payee", Amount: "value"},
	}
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "household", got.Profile.Name)
	assert.Equal(t, 12, got.Trends.WindowMonths)
	require.Len(t, got.Presets, 1)
	assert.Equal(t, "mybank", got.Presets[0].Name)
	assert.Equal(t, "trans date", got.Presets[0].Date)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "centsible.yaml"))
	assert.Error(t, err)
}

func TestRegistryLayersPresets(t *testing.T) {
	cfg := Default("household")
	cfg.Presets = []decode.ColumnMapping{
		// Override a built-in and add a new bank.
		{Name: "generic", Date: "when", Description: "what", Amount: "how much"},
		{Name: "mybank", Date: "trans date", Description: "payee", Amount: "value"},
	}

	r := cfg.Registry()
	assert.NotNil(t, r.Get("mybank"))
	assert.NotNil(t, r.Get("ofx"))

	generic, ok := r.Get("generic").(*decode.CSVDecoder)
	require.True(t, ok)
	assert.Equal(t, "when", generic.Mapping.Date)
}
