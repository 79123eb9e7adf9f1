package signature

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// SecretPrefix marks secrets made by GenerateSecret.
const SecretPrefix = "rwsec_"

const secretBytes = 32

// GenerateSecret returns SecretPrefix followed by 32 random bytes in hex.
func GenerateSecret() (string, error) {
	var b [secretBytes]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("signature: read random: %w", err)
	}
	return SecretPrefix + hex.EncodeToString(b[:]), nil
}

// IsGenerated reports whether s has the shape of a GenerateSecret result.
func IsGenerated(s string) bool {
	rest, ok := strings.CutPrefix(s, SecretPrefix)
	if !ok || len(rest) != hex.EncodedLen(secretBytes) {
		return false
	}
	_, err := hex.DecodeString(rest)
	return err == nil
}
