package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/safetrace/internal/client/migrations"
	"github.com/dmitrijs2005/safetrace/internal/common"
	"github.com/dmitrijs2005/safetrace/internal/dbx"
	"github.com/dmitrijs2005/safetrace/internal/filex"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLiteBackend stores one row per owner in the vaults table.
type SQLiteBackend struct {
	db dbx.DBTX
}

func NewSQLiteBackend(db dbx.DBTX) *SQLiteBackend {
	return &SQLiteBackend{db: db}
}

func (r *SQLiteBackend) Get(ctx context.Context, ownerID string) ([]byte, error) {
	var blob []byte
	err := r.db.QueryRowContext(ctx, `SELECT blob FROM vaults WHERE owner_id = ?`, ownerID).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vault[%s]: %w", ownerID, err)
	}
	return blob, nil
}

func (r *SQLiteBackend) Put(ctx context.Context, ownerID string, blob []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO vaults (owner_id, blob, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(owner_id) DO UPDATE SET blob = excluded.blob, updated_at = excluded.updated_at
	`, ownerID, blob, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to put vault[%s]: %w", ownerID, err)
	}
	return nil
}

// RunMigrations brings the client schema up to date.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// OpenSQLite opens (creating if needed) the database at path and migrates it.
// ":memory:" is accepted for ephemeral stores.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	dsn := path
	if path != ":memory:" {
		abs, err := filex.EnsureParentDir(path)
		if err != nil {
			return nil, err
		}
		dsn = abs
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}
