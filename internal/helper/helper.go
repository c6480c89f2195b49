package helper

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash8 returns a short stable fingerprint of s, safe to log in place of
// secrets like bearer tokens.
func Hash8(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:8])
}
