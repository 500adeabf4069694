package common

import "crypto/rand"

// GenerateRandByteArray returns size bytes read from crypto/rand.
// It returns an error if the random number generator fails.
func GenerateRandByteArray(size int) ([]byte, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

// WipeByteArray overwrites b with zeros. Used for master secrets once they
// leave scope. Nil is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
