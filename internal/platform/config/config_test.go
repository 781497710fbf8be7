package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"UNIBUS_ADDR", "DATABASE_URL", "REDIS_URL", "AUDIT_SINK", "POSTAL_API_URL", "GEO_API_TIMEOUT"} {
		t.Setenv(k, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.Empty(t, cfg.Database.URL)
	assert.Equal(t, 24*time.Hour, cfg.Redis.PostalCacheTTL)
	assert.Equal(t, AuditSinkFile, cfg.Audit.Sink)
	assert.Equal(t, "audit.log", cfg.Audit.LogPath)
	assert.Equal(t, 2*time.Second, cfg.Audit.WriteTimeout)
	assert.Equal(t, DefaultPostalURL, cfg.Postal.BaseURL)
	assert.Equal(t, DefaultEligibilityURL, cfg.Elig.BaseURL)
	assert.Equal(t, DefaultGeoURL, cfg.Geo.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Geo.Timeout)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("UNIBUS_ADDR", ":9000")
	t.Setenv("GEO_API_URL", "http://geo:8002")
	t.Setenv("GEO_API_TIMEOUT", "1500ms")
	t.Setenv("AUDIT_SINK", "memory")
	t.Setenv("AUDIT_BUFFER_SIZE", "256")
	t.Setenv("AUDIT_WRITE_TIMEOUT", "500ms")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "http://geo:8002", cfg.Geo.BaseURL)
	assert.Equal(t, 1500*time.Millisecond, cfg.Geo.Timeout)
	assert.Equal(t, AuditSinkMemory, cfg.Audit.Sink)
	assert.Equal(t, 256, cfg.Audit.BufferSize)
	assert.Equal(t, 500*time.Millisecond, cfg.Audit.WriteTimeout)
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"malformed duration", map[string]string{"POSTAL_API_TIMEOUT": "ten seconds"}},
		{"zero timeout", map[string]string{"ELIGIBILITY_API_TIMEOUT": "0s"}},
		{"zero audit write timeout", map[string]string{"AUDIT_WRITE_TIMEOUT": "0s"}},
		{"malformed int", map[string]string{"AUDIT_BUFFER_SIZE": "lots"}},
		{"unknown sink", map[string]string{"AUDIT_SINK": "s3"}},
		{"postgres sink without db", map[string]string{"AUDIT_SINK": "postgres", "DATABASE_URL": ""}},
		{"kafka sink without brokers", map[string]string{"AUDIT_SINK": "kafka", "KAFKA_BROKERS": ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}
