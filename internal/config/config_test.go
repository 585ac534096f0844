package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	require.Equal(t, ":8080", cfg.HTTPAddress)
	require.Equal(t, "file", cfg.StoreDriver)
	require.Equal(t, filepath.Join("data", "activities.json"), cfg.DataFile)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("HTTP_ADDRESS", ":9999")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/acts.db")

	cfg := Load()
	require.Equal(t, ":9999", cfg.HTTPAddress)
	require.Equal(t, "sqlite", cfg.StoreDriver)
	require.Equal(t, "/tmp/acts.db", cfg.SQLitePath)
}

func TestLoadIgnoresEmptyEnvValues(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")

	cfg := Load()
	require.Equal(t, "file", cfg.StoreDriver)
}
