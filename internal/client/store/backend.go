// Package store persists the per-owner vault collection. The collection is
// serialized as one JSON array and handed to a Backend as an opaque blob.
package store

import "context"

// Backend is a key-value persistence collaborator keyed by owner id.
//
// Get returns common.ErrorNotFound when nothing was stored for the owner.
// Put replaces the stored blob; the last writer wins.
type Backend interface {
	Get(ctx context.Context, ownerID string) ([]byte, error)
	Put(ctx context.Context, ownerID string, blob []byte) error
}
