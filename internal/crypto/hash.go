package crypto

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashHex returns the SHA-256 digest of s as a hex string.
func HashHex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// HashPairHex hashes the concatenation of two canonical strings.
func HashPairHex(left, right string) string {
	return HashHex(left + right)
}
