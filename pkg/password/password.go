package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Cost is the bcrypt work factor; tests lower it.
var Cost = bcrypt.DefaultCost

// MaxLength is the longest password bcrypt accepts.
const MaxLength = 72

var ErrTooLong = errors.New("password longer than 72 bytes")

func Hash(plain string) (string, error) {
	if len(plain) > MaxLength {
		return "", ErrTooLong
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify compares in constant time; any malformed hash simply fails.
func Verify(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
