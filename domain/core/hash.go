package core

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// BatchHash fingerprints sample data for audit trails
type BatchHash Hash

func (h BatchHash) String() string { return Hash(h).String() }

// ComputeBatchHash fingerprints a set of sample columns. Column order and
// sample order both contribute, so two batches hash equal only when they
// are positionally identical.
func ComputeBatchHash(keys []VariableKey, columns [][]float64) BatchHash {
	hasher := sha256.New()
	buf := make([]byte, 8)
	for i, key := range keys {
		hasher.Write([]byte(key.String()))
		if i >= len(columns) {
			continue
		}
		for _, v := range columns[i] {
			binary.LittleEndian.PutUint64(buf, math.Float64bits(v))
			hasher.Write(buf)
		}
	}
	return BatchHash(hex.EncodeToString(hasher.Sum(nil)))
}
