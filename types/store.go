package types

import (
	"bytes"
	"fmt"
	"sort"
)

// Entry is a single verified key/value pair.
type Entry struct {
	Key   []byte `cramberry:"1"`
	Value []byte `cramberry:"2"`
}

// VerifiedStore is a read-only key/value view authenticated against
// the root hash of one response envelope. It is only as trustworthy as
// that root hash; the root itself is taken from the server for the
// claimed height.
type VerifiedStore struct {
	height  uint32
	root    Hash
	entries []Entry
	index   map[string]int
}

// NewVerifiedStore builds a store from the entries returned by a proof
// verifier. Entries are copied and ordered by key. Duplicate keys are
// rejected; nothing is added or dropped.
func NewVerifiedStore(height uint32, root Hash, entries []Entry) (*VerifiedStore, error) {
	sorted := make([]Entry, len(entries))
	for i, e := range entries {
		sorted[i] = Entry{
			Key:   bytes.Clone(e.Key),
			Value: bytes.Clone(e.Value),
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i].Key, sorted[j].Key) < 0
	})

	index := make(map[string]int, len(sorted))
	for i, e := range sorted {
		k := string(e.Key)
		if _, dup := index[k]; dup {
			return nil, fmt.Errorf("duplicate key %x in verified entries", e.Key)
		}
		index[k] = i
	}

	return &VerifiedStore{
		height:  height,
		root:    root,
		entries: sorted,
		index:   index,
	}, nil
}

// Height returns the block height the store was verified at.
func (s *VerifiedStore) Height() uint32 { return s.height }

// Root returns the root hash the entries were verified against.
func (s *VerifiedStore) Root() Hash { return s.root }

// Len returns the number of verified entries.
func (s *VerifiedStore) Len() int { return len(s.entries) }

// At returns the i-th entry in key order. Panics if i is out of range.
func (s *VerifiedStore) At(i int) Entry {
	e := s.entries[i]
	return Entry{Key: bytes.Clone(e.Key), Value: bytes.Clone(e.Value)}
}

// Get returns the value stored at key.
func (s *VerifiedStore) Get(key []byte) ([]byte, bool) {
	i, ok := s.index[string(key)]
	if !ok {
		return nil, false
	}
	return bytes.Clone(s.entries[i].Value), true
}

// Has reports whether key is present in the verified view.
func (s *VerifiedStore) Has(key []byte) bool {
	_, ok := s.index[string(key)]
	return ok
}

// Entries returns a copy of all entries in key order.
func (s *VerifiedStore) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	for i := range s.entries {
		out[i] = s.At(i)
	}
	return out
}
