// Package common defines shared constants and sentinel errors used across
// the vault client, the persistence backends and the blob server. Callers
// should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Session errors.
	ErrWeakSecret  = errors.New("master password must be at least 8 characters long")
	ErrVaultLocked = errors.New("please set a master password first")

	// Form / record validation errors.
	ErrMissingTitle = errors.New("title is required")
	ErrUnknownField = errors.New("field is not allowed for this kind")
	ErrUnknownKind  = errors.New("unknown record kind")
	ErrKindChange   = errors.New("record kind cannot be changed")
	ErrNotEditing   = errors.New("no form is open")

	// Crypto errors. They never escape as panics.
	ErrEncryptionFailed = errors.New("encryption failed")
	ErrDecryptionFailed = errors.New("decryption failed")

	// Store errors.
	ErrCorruptStore     = errors.New("stored vault is corrupt")
	ErrStoreUnavailable = errors.New("vault store unavailable")

	// Platform errors.
	ErrClipboardUnavailable = errors.New("clipboard unavailable")

	// Auth errors (missing, invalid or foreign token).
	ErrorUnauthorized = errors.New("unauthorized")
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")
)
