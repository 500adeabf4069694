package owners

import "context"

type Repository interface {
	// NextRevision creates the owner on first use and returns its new revision.
	NextRevision(ctx context.Context, ownerID string) (int64, error)
}
