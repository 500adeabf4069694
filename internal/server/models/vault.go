package models

import "time"

// Vault is one owner's encrypted collection. The server never looks
// inside Blob.
type Vault struct {
	OwnerID   string
	Blob      []byte
	Revision  int64
	UpdatedAt time.Time
}
