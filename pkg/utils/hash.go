package utils

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
)

// HashString generates a SHA1 hash of a string
func HashString(s string) string {
	h := sha1.Sum([]byte(s))
	return hex.EncodeToString(h[:])
}

// NormalizeEmail trims and lowercases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
