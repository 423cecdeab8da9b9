package core

import (
	"encoding/hex"
	"io"

	"github.com/zeebo/blake3"
)

// Hash represents a Blake3 hash value of a text snapshot
type Hash [32]byte

// String returns the hexadecimal representation of the hash
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// Short returns the first 7 characters of the hash (like git)
func (h Hash) Short() string {
	return h.String()[:7]
}

// HashBytes computes the Blake3 hash of a byte slice
func HashBytes(data []byte) Hash {
	return blake3.Sum256(data)
}

// HashString computes the Blake3 hash of a text
func HashString(text string) Hash {
	return HashBytes([]byte(text))
}

// HashReader computes the Blake3 hash of data from an io.Reader
func HashReader(r io.Reader) (Hash, error) {
	hasher := blake3.New()
	if _, err := io.Copy(hasher, r); err != nil {
		return Hash{}, err
	}

	var hash Hash
	copy(hash[:], hasher.Sum(nil))
	return hash, nil
}

// IsZero returns true if the hash is all zeros
func (h Hash) IsZero() bool {
	return h == Hash{}
}
