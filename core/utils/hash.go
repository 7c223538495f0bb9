package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// Sha256Hex digests data to lowercase hex. Session cookie tokens are stored
// under this digest rather than in the clear.
func Sha256Hex(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
