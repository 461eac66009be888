package hashutil

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"lukechampine.com/blake3"
)

type HashAlgo string

const (
	HashAlgoSHA256 HashAlgo = "sha256"
	HashAlgoBLAKE3 HashAlgo = "blake3"
)

// digestLength is the number of hex characters kept by Digest.
const digestLength = 16

// HashBytes returns the hex hash of data using algo.
func HashBytes(data []byte, algo HashAlgo) (string, error) {
	switch algo {
	case HashAlgoSHA256:
		sum := sha256.Sum256(data)
		return hex.EncodeToString(sum[:]), nil
	case HashAlgoBLAKE3:
		sum := blake3.Sum256(data)
		return hex.EncodeToString(sum[:]), nil
	default:
		return "", fmt.Errorf("unsupported hash algorithm: %s", algo)
	}
}

// Digest returns a short blake3 fingerprint of a cached body.
// It identifies content in logs; it is not a cache key.
func Digest(body string) string {
	sum, _ := HashBytes([]byte(body), HashAlgoBLAKE3)
	return sum[:digestLength]
}
