package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const saltLength = 16

// GenerateSalt returns a fresh random per-user salt, hex encoded.
func GenerateSalt() (string, error) {
	bytes := make([]byte, saltLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	return hex.EncodeToString(bytes), nil
}
