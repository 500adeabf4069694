// Package session holds the master secret of the signed-in user for the
// lifetime of one session. The secret only ever lives in process memory.
package session

import (
	"log/slog"
	"sync"
	"unicode/utf8"

	"github.com/dmitrijs2005/safetrace/internal/common"
)

// MinSecretLength is the minimum master secret length in characters.
const MinSecretLength = 8

const redacted = "[redacted]"

// KeyHolder owns the master secret. It is safe for concurrent use.
type KeyHolder struct {
	mu      sync.RWMutex
	ownerID string
	secret  []byte
}

func New(ownerID string) *KeyHolder {
	return &KeyHolder{ownerID: ownerID}
}

func (k *KeyHolder) OwnerID() string {
	return k.ownerID
}

// SetMasterSecret installs a copy of secret, replacing any previous one.
// Records encrypted under the previous secret are not re-encrypted.
func (k *KeyHolder) SetMasterSecret(secret []byte) error {
	if utf8.RuneCount(secret) < MinSecretLength {
		return common.ErrWeakSecret
	}

	buf := make([]byte, len(secret))
	copy(buf, secret)

	k.mu.Lock()
	defer k.mu.Unlock()
	common.WipeByteArray(k.secret)
	k.secret = buf
	return nil
}

func (k *KeyHolder) IsUnlocked() bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.secret != nil
}

// Secret returns a copy of the master secret, or ErrVaultLocked.
func (k *KeyHolder) Secret() ([]byte, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if k.secret == nil {
		return nil, common.ErrVaultLocked
	}
	out := make([]byte, len(k.secret))
	copy(out, k.secret)
	return out, nil
}

// Clear wipes the secret. The holder is locked afterwards.
func (k *KeyHolder) Clear() {
	k.mu.Lock()
	defer k.mu.Unlock()
	common.WipeByteArray(k.secret)
	k.secret = nil
}

func (k *KeyHolder) String() string { return redacted }

func (k *KeyHolder) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("owner", k.ownerID),
		slog.String("secret", redacted),
	)
}
