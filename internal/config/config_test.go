package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	require.Equal(t, ":8080", cfg.Address)
	require.Equal(t, "http://127.0.0.1:8332", cfg.NodeURL)
	require.Equal(t, 30*time.Second, cfg.NodeTimeout)
	require.Equal(t, 15*time.Minute, cfg.AccessTokenValidity)
	require.Equal(t, "errors.txt", cfg.ErrorLogPath)
}

func TestParseEnvOverridesOnlySetVars(t *testing.T) {
	t.Setenv("NODE_URL", "http://node.test:18332")
	t.Setenv("NODE_TIMEOUT", "5s")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	require.Equal(t, "http://node.test:18332", cfg.NodeURL)
	require.Equal(t, 5*time.Second, cfg.NodeTimeout)
	// untouched
	require.Equal(t, ":8080", cfg.Address)
}

func TestParseJsonOverlay(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "conf*.json")
	require.NoError(t, err)

	_, err = f.WriteString(`{"address": ":9090", "node_timeout": "10s"}`)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	oldArgs := os.Args
	os.Args = []string{"gateway", "-c", f.Name()}
	defer func() { os.Args = oldArgs }()

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	require.Equal(t, ":9090", cfg.Address)
	require.Equal(t, 10*time.Second, cfg.NodeTimeout)
	require.Equal(t, "errors.txt", cfg.ErrorLogPath)
}

func TestParseFlags(t *testing.T) {
	oldArgs := os.Args
	os.Args = []string{"gateway", "-a", ":7070", "-t", "3", "-p", "hunter2"}
	defer func() { os.Args = oldArgs }()

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	require.Equal(t, ":7070", cfg.Address)
	require.Equal(t, 3*time.Second, cfg.NodeTimeout)
	require.Equal(t, "hunter2", cfg.NodePassword)
}
