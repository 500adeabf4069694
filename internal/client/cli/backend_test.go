package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/safetrace/internal/client/client"
	"github.com/dmitrijs2005/safetrace/internal/client/config"
	"github.com/dmitrijs2005/safetrace/internal/client/store"
	"github.com/dmitrijs2005/safetrace/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(backend string) *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.StoreBackend = backend
	return cfg
}

func TestOpenBackend(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		b, closeFn, err := openBackend(ctx, testConfig(config.BackendMemory), logging.Nop{})
		require.NoError(t, err)
		assert.IsType(t, &store.MemoryBackend{}, b)
		require.NoError(t, closeFn())
	})

	t.Run("sqlite", func(t *testing.T) {
		cfg := testConfig(config.BackendSQLite)
		cfg.DBPath = filepath.Join(t.TempDir(), "state", "vault.db")

		b, closeFn, err := openBackend(ctx, cfg, logging.Nop{})
		require.NoError(t, err)
		assert.IsType(t, &store.SQLiteBackend{}, b)
		require.NoError(t, b.Put(ctx, "u-1", []byte("[]")))
		require.NoError(t, closeFn())
	})

	t.Run("remote", func(t *testing.T) {
		b, closeFn, err := openBackend(ctx, testConfig(config.BackendRemote), logging.Nop{})
		require.NoError(t, err)
		assert.IsType(t, &client.GRPCBackend{}, b)
		_, ok := b.(pinger)
		assert.True(t, ok)
		require.NoError(t, closeFn())
	})

	t.Run("s3", func(t *testing.T) {
		cfg := testConfig(config.BackendS3)
		cfg.S3Endpoint = "http://localhost:9000"
		cfg.S3AccessKey = "minio"
		cfg.S3SecretKey = "minio123"

		b, closeFn, err := openBackend(ctx, cfg, logging.Nop{})
		require.NoError(t, err)
		assert.IsType(t, &store.S3Backend{}, b)
		require.NoError(t, closeFn())
	})

	t.Run("unknown", func(t *testing.T) {
		_, _, err := openBackend(ctx, testConfig("floppy"), logging.Nop{})
		require.ErrorContains(t, err, "floppy")
	})
}

func TestNewApp_ModeFollowsBackend(t *testing.T) {
	a, _ := newTestApp(t, store.NewMemoryBackend(), "")
	assert.Equal(t, ModeLocal, a.Mode())

	cfg := testConfig(config.BackendRemote)
	b, closeFn, err := openBackend(context.Background(), cfg, logging.Nop{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeFn() })

	remote := newApp(cfg, b, closeFn, rdr(""), nil, logging.Nop{})
	assert.Equal(t, ModeOffline, remote.Mode())
}
