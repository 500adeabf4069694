package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/safetrace/internal/client/client"
	"github.com/dmitrijs2005/safetrace/internal/client/config"
	"github.com/dmitrijs2005/safetrace/internal/client/store"
	"github.com/dmitrijs2005/safetrace/internal/logging"
)

// pinger is implemented by backends that can report reachability.
type pinger interface {
	Ping(ctx context.Context) error
}

func noopClose() error { return nil }

// openBackend builds the store backend selected by cfg. The returned close
// function releases its resources.
func openBackend(ctx context.Context, cfg *config.Config, log logging.Logger) (store.Backend, func() error, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		log.Warn(ctx, "memory backend selected, nothing will be persisted")
		return store.NewMemoryBackend(), noopClose, nil

	case config.BackendSQLite:
		db, err := store.OpenSQLite(ctx, cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("sqlite store: %w", err)
		}
		log.Debug(ctx, "sqlite store opened", "path", cfg.DBPath)
		return store.NewSQLiteBackend(db), db.Close, nil

	case config.BackendRemote:
		b, err := client.NewGRPCBackend(cfg.ServerEndpointAddr, cfg.AccessToken, cfg.RequestTimeout)
		if err != nil {
			return nil, nil, fmt.Errorf("remote store: %w", err)
		}
		log.Debug(ctx, "remote store configured", "addr", cfg.ServerEndpointAddr)
		return b, b.Close, nil

	case config.BackendS3:
		c, err := store.NewS3Client(ctx, store.S3Options{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("s3 store: %w", err)
		}
		log.Debug(ctx, "s3 store configured", "bucket", cfg.S3Bucket)
		return store.NewS3Backend(c, cfg.S3Bucket), noopClose, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
