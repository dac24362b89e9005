package auth

import (
	"crypto/sha256"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used for new passwords.
const DefaultCost = 10

// maxBcryptInput is the most bcrypt will accept.
const maxBcryptInput = 72

// prepare maps passwords longer than bcrypt's input limit onto a fixed-size
// digest. Shorter passwords go through unchanged.
func prepare(plain string) []byte {
	if len(plain) <= maxBcryptInput {
		return []byte(plain)
	}
	sum := sha256.Sum256([]byte(plain))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

func HashPassword(plain string, cost int) (string, error) {
	if cost == 0 {
		cost = DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword(prepare(plain), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), prepare(plain)) == nil
}
