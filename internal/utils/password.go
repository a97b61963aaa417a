package utils

import (
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

const (
	argon2Memory      = 64 * 1024
	argon2Iterations  = 1
	argon2Parallelism = 4
	argon2KeyLength   = 32

	// Bounds the work a single hash can cost.
	maxPasswordLength = 1024
)

var ErrInvalidSalt = errors.New("invalid password salt")

// HashPassword derives the stored hash for password with the user's salt.
func HashPassword(password, salt string) (string, error) {
	if len(password) > maxPasswordLength {
		return "", errors.New("password exceeds maximum length")
	}

	saltBytes, err := hex.DecodeString(salt)
	if err != nil || len(saltBytes) == 0 {
		return "", fmt.Errorf("%w: %v", ErrInvalidSalt, err)
	}

	key := argon2.IDKey([]byte(password), saltBytes, argon2Iterations, argon2Memory, argon2Parallelism, argon2KeyLength)
	return base64.RawStdEncoding.EncodeToString(key), nil
}

// VerifyPassword recomputes the hash and compares it in constant time.
func VerifyPassword(password, salt, hash string) bool {
	computed, err := HashPassword(password, salt)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1
}
