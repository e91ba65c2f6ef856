package types

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
)

// Response envelope layout:
//
//	[0, 4)   height, big-endian uint32
//	[4, 36)  state root hash
//	[36, n)  proof bytes
const (
	EnvelopeHeightSize = 4
	EnvelopeHeaderSize = EnvelopeHeightSize + HashSize
)

// ErrEnvelopeTooShort is returned for envelopes shorter than the
// fixed header.
var ErrEnvelopeTooShort = errors.New("response envelope too short")

// ResponseEnvelope is the framed answer of the REST gateway to a
// state query.
type ResponseEnvelope struct {
	Height   uint32
	RootHash Hash
	Proof    []byte
}

// DecodeResponseEnvelope parses a raw (already base64-decoded)
// envelope. The returned Proof aliases data.
func DecodeResponseEnvelope(data []byte) (ResponseEnvelope, error) {
	if len(data) < EnvelopeHeaderSize {
		return ResponseEnvelope{}, fmt.Errorf("%w: got %d bytes, need at least %d",
			ErrEnvelopeTooShort, len(data), EnvelopeHeaderSize)
	}
	var env ResponseEnvelope
	env.Height = binary.BigEndian.Uint32(data[:EnvelopeHeightSize])
	copy(env.RootHash[:], data[EnvelopeHeightSize:EnvelopeHeaderSize])
	env.Proof = data[EnvelopeHeaderSize:]
	return env, nil
}

// DecodeResponseEnvelopeBase64 decodes the base64 text body of a query
// response and parses the envelope inside it.
func DecodeResponseEnvelopeBase64(text string) (ResponseEnvelope, error) {
	raw, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return ResponseEnvelope{}, fmt.Errorf("invalid base64 body: %w", err)
	}
	return DecodeResponseEnvelope(raw)
}

// Bytes encodes the envelope in its binary layout.
func (e ResponseEnvelope) Bytes() []byte {
	out := make([]byte, EnvelopeHeaderSize+len(e.Proof))
	binary.BigEndian.PutUint32(out[:EnvelopeHeightSize], e.Height)
	copy(out[EnvelopeHeightSize:EnvelopeHeaderSize], e.RootHash[:])
	copy(out[EnvelopeHeaderSize:], e.Proof)
	return out
}

// Base64 encodes the envelope as the gateway's response body.
func (e ResponseEnvelope) Base64() string {
	return base64.StdEncoding.EncodeToString(e.Bytes())
}
