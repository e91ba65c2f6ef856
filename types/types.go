// Package types defines the wire and domain types of the verified
// REST client: response envelopes, verified stores, typed queries,
// sign documents and deposit commitments.
//
// Binary query encodings use cramberry struct tags for deterministic
// serialization. JSON documents (sign docs, signed transactions)
// follow the amino-JSON layout accepted by the chain's REST gateway.
package types

import (
	"encoding/hex"
	"fmt"
)

// HashSize is the size of a state root hash in bytes.
const HashSize = 32

// Hash is a 32-byte state root hash.
type Hash [HashSize]byte

// NewHash creates a Hash from bytes, returning an error if the length
// is wrong.
func NewHash(data []byte) (Hash, error) {
	var h Hash
	if len(data) != HashSize {
		return h, fmt.Errorf("hash must be %d bytes, got %d", HashSize, len(data))
	}
	copy(h[:], data)
	return h, nil
}

// String returns the hex encoding of the hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// IsZero reports whether every byte of the hash is zero.
func (h Hash) IsZero() bool {
	return h == Hash{}
}
