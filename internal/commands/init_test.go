package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centsible-dev/centsible/internal/config"
)

func TestRunInitLayout(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, runInit(dir, "household", true))

	for _, p := range []string{
		"centsible.yaml",
		"categories.csv",
		"import",
		filepath.Join("import", "processed"),
		"logs",
	} {
		_, err := os.Stat(filepath.Join(dir, p))
		assert.NoError(t, err, "%s should exist", p)
	}

	cfg, err := config.Load(filepath.Join(dir, "centsible.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "household", cfg.Profile.Name)
	// --no-git also disables auto-commit.
	assert.False(t, cfg.Git.AutoCommit)
}

func TestRunInitRefusesExistingProfile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, runInit(dir, "household", true))

	err := runInit(dir, "household", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestRunInitWithGit(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, runInit(dir, "household", false))

	_, err := os.Stat(filepath.Join(dir, ".git"))
	assert.NoError(t, err, "git repository should be initialized")
}
