package id

import (
	"strings"
	"testing"
)

func TestNewToken(t *testing.T) {
	const n = 200
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		tok, err := NewToken()
		if err != nil {
			t.Fatalf("NewToken: %v", err)
		}
		if !IsToken(tok) {
			t.Fatalf("not a token: %q", tok)
		}
		if _, ok := seen[tok]; ok {
			t.Fatalf("duplicate token after %d iterations: %q", i, tok)
		}
		seen[tok] = struct{}{}
	}
}

func TestIsToken(t *testing.T) {
	cases := map[string]bool{
		strings.Repeat("a", 32):              true,
		"0123456789abcdef0123456789abcdef":   true,
		strings.Repeat("A", 32):              false,
		strings.Repeat("a", 31):              false,
		strings.Repeat("a", 33):              false,
		"3f9a6a1b-3d54-4fbe-8b3a-6b3e8d6b2c": false,
		"":                                   false,
		strings.Repeat("g", 32):              false,
	}
	for in, want := range cases {
		if got := IsToken(in); got != want {
			t.Fatalf("IsToken(%q) = %v, want %v", in, got, want)
		}
	}
}
