package types

import (
	"encoding/json"
	"fmt"
)

// PubKeySecp256k1Type is the amino type name of secp256k1 public keys.
const PubKeySecp256k1Type = "tendermint/PubKeySecp256k1"

// PubKey is an amino-JSON public key. Value is base64 in JSON.
type PubKey struct {
	Type  string `json:"type"`
	Value []byte `json:"value"`
}

// Signature binds a signer's public key to a signature over sign bytes.
type Signature struct {
	PubKey    PubKey `json:"pub_key"`
	Signature []byte `json:"signature"`
}

// SignedTx is the envelope broadcast to the write path.
type SignedTx struct {
	Msg        []Msg       `json:"msg"`
	Fee        Fee         `json:"fee"`
	Memo       string      `json:"memo"`
	Signatures []Signature `json:"signatures"`
}

// NewSignedTx combines a sign document with its signature.
func NewSignedTx(doc SignDoc, sig Signature) SignedTx {
	return SignedTx{
		Msg:        doc.Msgs,
		Fee:        doc.Fee,
		Memo:       doc.Memo,
		Signatures: []Signature{sig},
	}
}

// Marshal returns the serialized signed envelope.
func (tx SignedTx) Marshal() ([]byte, error) {
	data, err := json.Marshal(tx)
	if err != nil {
		return nil, fmt.Errorf("marshal signed tx: %w", err)
	}
	return data, nil
}

// BroadcastResult is the write endpoint's answer to an accepted
// broadcast. Raw is the response body, surfaced verbatim.
type BroadcastResult struct {
	Raw []byte
}

// String returns the raw body as text.
func (r BroadcastResult) String() string {
	return string(r.Raw)
}
