package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, BackendSQLite, c.StoreBackend)
	assert.True(t, strings.HasSuffix(c.DBPath, ".db"))
	assert.Equal(t, "127.0.0.1:50051", c.ServerEndpointAddr)
	assert.Equal(t, 5*time.Second, c.RequestTimeout)
	assert.Equal(t, 30*time.Second, c.OnlineCheckInterval)
	assert.Equal(t, "us-east-1", c.S3Region)
	assert.Equal(t, "safetrace", c.S3Bucket)
	assert.Equal(t, "warn", c.LogLevel)
	assert.Empty(t, c.AccessToken)
	require.NoError(t, c.Validate())
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, BackendSQLite, cfg.StoreBackend)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"memory", func(c *Config) { c.StoreBackend = BackendMemory; c.DBPath = "" }, ""},
		{"unknown backend", func(c *Config) { c.StoreBackend = "floppy" }, "unknown store backend"},
		{"sqlite without path", func(c *Config) { c.DBPath = "" }, "database path"},
		{"s3 without bucket", func(c *Config) { c.StoreBackend = BackendS3; c.S3Bucket = "" }, "bucket"},
		{"zero timeout", func(c *Config) { c.RequestTimeout = 0 }, "timeout"},
		{"remote without interval", func(c *Config) { c.StoreBackend = BackendRemote; c.OnlineCheckInterval = 0 }, "interval"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}
