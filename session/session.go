// Package session provides the per-operation Session that pins every
// query it performs to a single block height.
package session

import (
	"fmt"
	"sync/atomic"

	"github.com/blockberries/webclient"

	"github.com/google/uuid"
)

// pinState encodes the pinned height: zero means unset, otherwise the
// pinned height plus one.
type pinState uint64

const unpinned pinState = 0

func pinned(height uint32) pinState { return pinState(uint64(height) + 1) }

func (s pinState) height() (uint32, bool) {
	if s == unpinned {
		return 0, false
	}
	return uint32(s - 1), true
}

func (s pinState) String() string {
	h, ok := s.height()
	if !ok {
		return "Unpinned"
	}
	return fmt.Sprintf("Pinned(%d)", h)
}

// Session is one logical client operation. It owns at most one pinned
// height, set by the first successful query response and fixed for the
// rest of the session's life.
//
// A Session is created per operation and must not be shared between
// concurrently in-flight operations. Observe is nevertheless atomic, so
// a racing second pin attempt fails with a ConsistencyError instead of
// overwriting the first.
type Session struct {
	id    string
	state atomic.Uint64
	// Set once a ConsistencyError has been returned.
	failed atomic.Bool
}

// New creates an unpinned session.
func New() *Session {
	return &Session{id: uuid.NewString()}
}

// NewAt creates a session already pinned to height, for callers
// resuming a read sequence at a known snapshot.
func NewAt(height uint32) *Session {
	s := New()
	s.state.Store(uint64(pinned(height)))
	return s
}

// ID returns the session's correlation id.
func (s *Session) ID() string { return s.id }

// Height returns the pinned height, if any.
func (s *Session) Height() (uint32, bool) {
	return pinState(s.state.Load()).height()
}

// State returns a human-readable pin state.
func (s *Session) State() string {
	return pinState(s.state.Load()).String()
}

// Failed reports whether the session observed a height mismatch.
func (s *Session) Failed() bool {
	return s.failed.Load()
}

// Observe records the height of a response. The first call pins the
// session; later calls must report the pinned height or fail with a
// *webclient.ConsistencyError. Once failed, every further call fails.
func (s *Session) Observe(height uint32) error {
	if s.state.CompareAndSwap(uint64(unpinned), uint64(pinned(height))) {
		return nil
	}
	expected, _ := pinState(s.state.Load()).height()
	if expected != height || s.failed.Load() {
		s.failed.Store(true)
		return webclient.NewConsistencyError(expected, height)
	}
	return nil
}
