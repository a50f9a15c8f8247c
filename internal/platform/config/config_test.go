package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookup(env map[string]string) func(string) string {
	return func(key string) string { return env[key] }
}

func TestFromLookupDefaults(t *testing.T) {
	cfg, err := fromLookup(lookup(nil))
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.Audit.KafkaEnabled())
	assert.Equal(t, "staffdir.audit", cfg.Audit.KafkaTopic)
}

func TestFromLookupOverrides(t *testing.T) {
	cfg, err := fromLookup(lookup(map[string]string{
		"STAFFDIR_ADDR":       "127.0.0.1:8081",
		"LOG_LEVEL":           "debug",
		"SHUTDOWN_TIMEOUT":    "3s",
		"AUDIT_KAFKA_BROKERS": " broker-1:9092, ,broker-2:9092 ",
		"AUDIT_KAFKA_TOPIC":   "hr.audit",
	}))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8081", cfg.Addr)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.Audit.KafkaEnabled())
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.Audit.KafkaBrokers)
	assert.Equal(t, "hr.audit", cfg.Audit.KafkaTopic)
}

func TestFromLookupRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown log level", env: map[string]string{"LOG_LEVEL": "chatty"}},
		{name: "malformed shutdown timeout", env: map[string]string{"SHUTDOWN_TIMEOUT": "soon"}},
		{name: "non-positive shutdown timeout", env: map[string]string{"SHUTDOWN_TIMEOUT": "0s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fromLookup(lookup(tt.env))
			require.Error(t, err)
		})
	}
}

func TestFromEnvReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("STAFFDIR_ADDR=:9100\nLOG_LEVEL=warn\n"), 0o600))
	t.Chdir(dir)
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("STAFFDIR_ADDR", "")
	require.NoError(t, os.Unsetenv("STAFFDIR_ADDR"))

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":9100", cfg.Addr)
	assert.Equal(t, slog.LevelError, cfg.LogLevel)
}
