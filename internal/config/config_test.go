package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"searchdeck/internal/domain"
)

func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	svc := NewConfigService()

	cfg := DefaultConfig()
	cfg.Gateway.BaseURL = "https://search.example.com"
	cfg.Gateway.Token = "tok"
	cfg.Search.PageSize = 25
	cfg.History = []SavedSearch{{Query: "golang", ResultCount: 12, Timestamp: time.Now().UTC()}}

	require.NoError(t, svc.SaveToPath(cfg, path))

	loaded, err := svc.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "https://search.example.com", loaded.Gateway.BaseURL)
	assert.Equal(t, "tok", loaded.Gateway.Token)
	assert.Equal(t, 25, loaded.Search.PageSize)
	require.Len(t, loaded.History, 1)
	assert.Equal(t, "golang", loaded.History[0].Query)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	svc := NewConfigService()
	_, err := svc.LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err, "explicit path must exist")
}

func TestDefaultsAppliedToSparseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("version = 1\n\n[gateway]\nbase_url = \"http://localhost:9999\"\n"), 0644))

	svc := NewConfigService()
	cfg, err := svc.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999", cfg.Gateway.BaseURL)
	assert.Equal(t, 300, cfg.Search.DebounceMs, "missing tunables get defaults")
	assert.Equal(t, 2, cfg.Search.MinQueryLength)
	assert.Equal(t, 10, cfg.Search.PageSize)
	assert.Equal(t, 15, cfg.Gateway.TimeoutSeconds)
}

func TestInvalidTomlRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("version = [broken"), 0644))

	svc := NewConfigService()
	_, err := svc.LoadFromPath(path)
	assert.Error(t, err)
}

func TestHistoryConversion(t *testing.T) {
	cfg := DefaultConfig()
	ts := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	cfg.SetHistory([]domain.HistoryEntry{
		{ID: "abc", Query: "golang", ResultCount: 4, Timestamp: ts},
	})

	require.Len(t, cfg.History, 1)
	assert.Equal(t, "golang", cfg.History[0].Query)

	entries := cfg.SavedHistory()
	require.Len(t, entries, 1)
	assert.Equal(t, "golang", entries[0].Query)
	assert.Equal(t, 4, entries[0].ResultCount)
	assert.Equal(t, ts, entries[0].Timestamp)
	assert.Empty(t, entries[0].ID, "ids are not persisted; the store re-assigns them")
}

func TestDurationHelpers(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 300*time.Millisecond, cfg.Search.Debounce())
	assert.Equal(t, 15*time.Second, cfg.Gateway.Timeout())
}
