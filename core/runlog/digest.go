package runlog

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Digests returns the hex SHA-256 and BLAKE3 digests of data. Both are
// recorded per run so an input file can be matched against a log entry by
// either hash.
func Digests(data []byte) (sha256Hex, blake3Hex string) {
	s := sha256.Sum256(data)
	b := blake3.Sum256(data)
	return hex.EncodeToString(s[:]), hex.EncodeToString(b[:])
}
