package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// TokenLen is the length of a session token: 128 random bits in lowercase hex.
const TokenLen = 32

// NewToken returns a fresh session token.
func NewToken() (string, error) {
	b := make([]byte, TokenLen/2)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// IsToken reports whether s has the shape of a token from NewToken, so
// malformed bearer values can be rejected without a store lookup.
func IsToken(s string) bool {
	if len(s) != TokenLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
