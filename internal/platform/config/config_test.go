package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 12, cfg.Registration.MinimumAge)
	assert.Equal(t, 100, cfg.Registration.BirthYearSpan)
	assert.False(t, cfg.Registration.StrictInvariants)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("REGISTRATION_ADDR", ":9090")
	t.Setenv("REGISTRATION_MINIMUM_AGE", "18")
	t.Setenv("REGISTRATION_STRICT_INVARIANTS", "true")
	t.Setenv("REGISTRATION_LOG_FORMAT", "text")
	t.Setenv("REGISTRATION_SHUTDOWN_TIMEOUT", "3s")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 18, cfg.Registration.MinimumAge)
	assert.True(t, cfg.Registration.StrictInvariants)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestFromEnvErrors(t *testing.T) {
	tests := []struct {
		name, key, value, want string
	}{
		{"unparsable age", "REGISTRATION_MINIMUM_AGE", "twelve", "parse env:"},
		{"non-positive age", "REGISTRATION_MINIMUM_AGE", "0", "REGISTRATION_MINIMUM_AGE"},
		{"span below age", "REGISTRATION_BIRTH_YEAR_SPAN", "10", "REGISTRATION_BIRTH_YEAR_SPAN"},
		{"unknown log format", "REGISTRATION_LOG_FORMAT", "xml", "REGISTRATION_LOG_FORMAT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := FromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
