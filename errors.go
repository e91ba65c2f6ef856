package webclient

import (
	"errors"
	"fmt"
)

// ErrNoEndpoint is wrapped by a ConfigError when no REST gateway is
// configured.
var ErrNoEndpoint = errors.New("no REST endpoint configured")

// TransportError is a network or HTTP level failure of a query.
// Status is zero when no HTTP response was received.
type TransportError struct {
	URL    string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("transport: %s: HTTP %d", e.URL, e.Status)
	}
	return fmt.Sprintf("transport: %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// NewTransportError creates a TransportError.
func NewTransportError(url string, status int, err error) *TransportError {
	return &TransportError{URL: url, Status: status, Err: err}
}

// DecodeError signals malformed response framing: invalid base64 or
// an undersized envelope.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// NewDecodeError creates a DecodeError.
func NewDecodeError(err error) *DecodeError {
	return &DecodeError{Err: err}
}

// ConsistencyError signals that a response was served at a different
// height than the one the session is pinned to. The session is unusable
// after this error.
type ConsistencyError struct {
	Expected uint32
	Observed uint32
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("height mismatch: expected %d, got %d", e.Expected, e.Observed)
}

// NewConsistencyError creates a ConsistencyError.
func NewConsistencyError(expected, observed uint32) *ConsistencyError {
	return &ConsistencyError{Expected: expected, Observed: observed}
}

// ProofError carries the proof verifier's rejection.
type ProofError struct {
	Height uint32
	Err    error
}

func (e *ProofError) Error() string {
	return fmt.Sprintf("proof at height %d: %v", e.Height, e.Err)
}

func (e *ProofError) Unwrap() error { return e.Err }

// NewProofError creates a ProofError.
func NewProofError(height uint32, err error) *ProofError {
	return &ProofError{Height: height, Err: err}
}

// BroadcastError signals that the write endpoint failed to accept a
// signed envelope. Code is the application result code when the
// endpoint answered with a structured rejection.
type BroadcastError struct {
	Status int
	Code   uint32
	Body   string
	Err    error
}

func (e *BroadcastError) Error() string {
	switch {
	case e.Code != 0:
		return fmt.Sprintf("broadcast rejected: code %d: %s", e.Code, e.Body)
	case e.Status != 0:
		return fmt.Sprintf("broadcast: HTTP %d: %s", e.Status, e.Body)
	default:
		return fmt.Sprintf("broadcast: %v", e.Err)
	}
}

func (e *BroadcastError) Unwrap() error { return e.Err }

// NewBroadcastError creates a BroadcastError.
func NewBroadcastError(status int, code uint32, body string, err error) *BroadcastError {
	return &BroadcastError{Status: status, Code: code, Body: body, Err: err}
}

// RelayerError aborts a deposit-commitment announcement. Status is
// zero when the relayer could not be reached.
type RelayerError struct {
	Relayer string
	Status  int
	Err     error
}

func (e *RelayerError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("relayer %s: response returned with error code: %d", e.Relayer, e.Status)
	}
	return fmt.Sprintf("relayer %s: %v", e.Relayer, e.Err)
}

func (e *RelayerError) Unwrap() error { return e.Err }

// NewRelayerError creates a RelayerError.
func NewRelayerError(relayer string, status int, err error) *RelayerError {
	return &RelayerError{Relayer: relayer, Status: status, Err: err}
}

// ConfigError signals missing or unusable configuration.
type ConfigError struct {
	Key string
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Key, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// NewConfigError creates a ConfigError.
func NewConfigError(key string, err error) *ConfigError {
	return &ConfigError{Key: key, Err: err}
}

// IsTransport checks whether an error is a TransportError and returns it.
func IsTransport(err error) (*TransportError, bool) {
	var e *TransportError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsDecode checks whether an error is a DecodeError and returns it.
func IsDecode(err error) (*DecodeError, bool) {
	var e *DecodeError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsConsistency checks whether an error is a ConsistencyError and returns it.
func IsConsistency(err error) (*ConsistencyError, bool) {
	var e *ConsistencyError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsProof checks whether an error is a ProofError and returns it.
func IsProof(err error) (*ProofError, bool) {
	var e *ProofError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsBroadcast checks whether an error is a BroadcastError and returns it.
func IsBroadcast(err error) (*BroadcastError, bool) {
	var e *BroadcastError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsRelayer checks whether an error is a RelayerError and returns it.
func IsRelayer(err error) (*RelayerError, bool) {
	var e *RelayerError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsConfig checks whether an error is a ConfigError and returns it.
func IsConfig(err error) (*ConfigError, bool) {
	var e *ConfigError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
