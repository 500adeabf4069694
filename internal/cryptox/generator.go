package cryptox

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// DefaultPasswordLength is the length used by the vault's "generate" action.
const DefaultPasswordLength = 16

const (
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	digitChars  = "0123456789"
	symbolChars = "!@#$%^&*()_+-=[]{}|;:,.<>?"
	allChars    = lowerChars + upperChars + digitChars + symbolChars
)

// randIndex is a test seam over crypto/rand.
var randIndex = func(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

func pick(set string) (byte, error) {
	i, err := randIndex(len(set))
	if err != nil {
		return 0, err
	}
	return set[i], nil
}

// GenerateSecurePassword returns a random password of the given length.
//
// The result always holds at least one uppercase letter, one lowercase
// letter, one digit and one symbol; the remaining characters are drawn
// uniformly from the union and the whole sequence is shuffled. For
// length <= 4 only the first length guaranteed characters are used.
// All randomness comes from crypto/rand.
func GenerateSecurePassword(length int) (string, error) {
	if length <= 0 {
		return "", nil
	}

	password := make([]byte, 0, max(length, 4))
	for _, set := range []string{upperChars, lowerChars, digitChars, symbolChars} {
		ch, err := pick(set)
		if err != nil {
			return "", fmt.Errorf("random source: %w", err)
		}
		password = append(password, ch)
	}
	if length < len(password) {
		password = password[:length]
	}

	for len(password) < length {
		ch, err := pick(allChars)
		if err != nil {
			return "", fmt.Errorf("random source: %w", err)
		}
		password = append(password, ch)
	}

	// Fisher-Yates
	for i := len(password) - 1; i > 0; i-- {
		j, err := randIndex(i + 1)
		if err != nil {
			return "", fmt.Errorf("random source: %w", err)
		}
		password[i], password[j] = password[j], password[i]
	}

	return string(password), nil
}
