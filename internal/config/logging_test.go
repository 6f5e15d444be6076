package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(true, &buf).Debug("visible")
	assert.Contains(t, buf.String(), `"msg":"visible"`)

	buf.Reset()
	NewLogger(false, &buf).Debug("hidden")
	assert.Empty(t, buf.String())

	buf.Reset()
	NewLogger(false, &buf).Info("kept")
	assert.Contains(t, buf.String(), `"msg":"kept"`)
}

func TestLoadDebugDrivesLoggerLevel(t *testing.T) {
	tests := []struct {
		name  string
		env   string
		debug string
		want  bool
	}{
		{name: "dev defaults on", env: "dev", want: true},
		{name: "prod defaults off", env: "prod", want: false},
		{name: "prod forced on", env: "prod", debug: "true", want: true},
		{name: "dev forced off", env: "dev", debug: "false", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ENVIRONMENT", tt.env)
			t.Setenv("DEBUG", tt.debug)

			cfg := Load()
			assert.Equal(t, tt.want, cfg.Debug)

			var buf bytes.Buffer
			NewLogger(cfg.Debug, &buf).Debug("detail")
			assert.Equal(t, tt.want, buf.Len() > 0)
		})
	}
}

func TestCleanupOldLogs(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"gateway-2026-01-01T00-00-00.000.log",
		"gateway-2026-01-02T00-00-00.000.log",
		"gateway-2026-01-03T00-00-00.000.log",
		"unrelated.log",
	}
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), nil, 0o600))
	}

	require.NoError(t, cleanupOldLogs(dir, 2))

	remaining, err := filepath.Glob(filepath.Join(dir, "*.log"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "gateway-2026-01-02T00-00-00.000.log"),
		filepath.Join(dir, "gateway-2026-01-03T00-00-00.000.log"),
		filepath.Join(dir, "unrelated.log"),
	}, remaining)
}

func TestSetupLogFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	f, err := SetupLogFile(dir, 5)
	require.NoError(t, err)
	defer f.Close()

	assert.FileExists(t, f.Name())
	assert.Equal(t, dir, filepath.Dir(f.Name()))
}
