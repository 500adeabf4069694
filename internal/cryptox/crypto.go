// Package cryptox implements the vault's crypto primitives: field-level
// encryption under a master secret, the password strength scorer and the
// secure password generator.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"fmt"

	"github.com/dmitrijs2005/safetrace/internal/common"
	"golang.org/x/crypto/argon2"
)

// DecryptionFailedSentinel is rendered in place of a field value that could
// not be decrypted (wrong master secret or corrupted ciphertext).
const DecryptionFailedSentinel = "[Decryption failed]"

const (
	formatVersion byte = 1
	saltSize           = 16
	nonceSize          = 12
	keySize            = 32
	headerSize         = 1 + saltSize + nonceSize
)

// KDFParams are the Argon2id cost parameters used to turn a master secret
// and a per-ciphertext salt into an AES-256 key.
type KDFParams struct {
	Time    uint32
	Memory  uint32
	Threads uint8
}

// DefaultKDFParams is used by Encrypt and Decrypt.
var DefaultKDFParams = KDFParams{Time: 1, Memory: 32 * 1024, Threads: 4}

func deriveKey(secret, salt []byte, p KDFParams) []byte {
	return argon2.IDKey(secret, salt, p.Time, p.Memory, p.Threads, keySize)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Encrypt seals plaintext under key and returns printable ciphertext.
//
// Every call draws a fresh salt and nonce, so encrypting the same value twice
// yields different strings. The layout before base64 is
//
//	version(1) || salt(16) || nonce(12) || AES-GCM(plaintext)
//
// An empty plaintext maps to an empty string without touching the cipher.
// On failure Encrypt returns "" and an error wrapping
// common.ErrEncryptionFailed; it never panics.
func Encrypt(plaintext string, key []byte) (ciphertext string, err error) {
	if plaintext == "" {
		return "", nil
	}

	defer func() {
		if r := recover(); r != nil {
			ciphertext = ""
			err = fmt.Errorf("%w: %v", common.ErrEncryptionFailed, r)
		}
	}()

	salt, err := common.GenerateRandByteArray(saltSize)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrEncryptionFailed, err)
	}
	nonce, err := common.GenerateRandByteArray(nonceSize)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrEncryptionFailed, err)
	}

	aead, err := newGCM(deriveKey(key, salt, DefaultKDFParams))
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrEncryptionFailed, err)
	}

	out := make([]byte, 0, headerSize+len(plaintext)+aead.Overhead())
	out = append(out, formatVersion)
	out = append(out, salt...)
	out = append(out, nonce...)
	out = aead.Seal(out, nonce, []byte(plaintext), nil)

	return base64.StdEncoding.EncodeToString(out), nil
}

// Decrypt reverses Encrypt. An empty ciphertext maps to an empty plaintext.
//
// A wrong key and a corrupted ciphertext are indistinguishable: both return
// "" and common.ErrDecryptionFailed. Decrypt never panics.
func Decrypt(ciphertext string, key []byte) (plaintext string, err error) {
	if ciphertext == "" {
		return "", nil
	}

	defer func() {
		if r := recover(); r != nil {
			plaintext = ""
			err = common.ErrDecryptionFailed
		}
	}()

	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", common.ErrDecryptionFailed
	}
	if len(raw) <= headerSize || raw[0] != formatVersion {
		return "", common.ErrDecryptionFailed
	}

	salt := raw[1 : 1+saltSize]
	nonce := raw[1+saltSize : headerSize]

	aead, err := newGCM(deriveKey(key, salt, DefaultKDFParams))
	if err != nil {
		return "", common.ErrDecryptionFailed
	}

	out, err := aead.Open(nil, nonce, raw[headerSize:], nil)
	if err != nil {
		return "", common.ErrDecryptionFailed
	}
	return string(out), nil
}

// DecryptOrSentinel is Decrypt for display paths: failures come back as
// DecryptionFailedSentinel instead of an error.
func DecryptOrSentinel(ciphertext string, key []byte) string {
	s, err := Decrypt(ciphertext, key)
	if err != nil {
		return DecryptionFailedSentinel
	}
	return s
}
