package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
)

// Write-path constants of the chain.
const (
	// DefaultChainID is used when no chain id is configured.
	DefaultChainID = "nomic-stakenet-3"
	// AccountNumber is fixed; the chain does not number accounts.
	AccountNumber = "0"
	// FeeDenom is the denomination of the fee coin.
	FeeDenom = "unom"
	// FeeAmount is the fee coin amount.
	FeeAmount = "0"
	// MinFee is the minimum gas declared by every transaction.
	MinFee uint64 = 10_000
)

// Coin is an amount of a single denomination. Amounts are decimal
// strings.
type Coin struct {
	Amount string `json:"amount"`
	Denom  string `json:"denom"`
}

// Fee is the fee descriptor of a sign document.
type Fee struct {
	Amount []Coin `json:"amount"`
	Gas    string `json:"gas"`
}

// MinimalFee returns the fixed fee every submission declares.
func MinimalFee() Fee {
	return Fee{
		Amount: []Coin{{Amount: FeeAmount, Denom: FeeDenom}},
		Gas:    fmt.Sprintf("%d", MinFee),
	}
}

// Msg is a tagged message. The payload is opaque to the submission
// pipeline.
type Msg struct {
	Type  string         `json:"type"`
	Value map[string]any `json:"value"`
}

// NewMsg creates a message, normalizing a nil payload to an empty
// object.
func NewMsg(typ string, value map[string]any) Msg {
	if value == nil {
		value = map[string]any{}
	}
	return Msg{Type: typ, Value: value}
}

// SignDoc is the canonical document signed for a write.
type SignDoc struct {
	AccountNumber string `json:"account_number"`
	ChainID       string `json:"chain_id"`
	Fee           Fee    `json:"fee"`
	Memo          string `json:"memo"`
	Msgs          []Msg  `json:"msgs"`
	Sequence      string `json:"sequence"`
}

// SequenceAfter returns the decimal sequence number following nonce.
// It does not wrap at the uint64 boundary.
func SequenceAfter(nonce uint64) string {
	n := new(big.Int).SetUint64(nonce)
	return n.Add(n, big.NewInt(1)).String()
}

// NewSignDoc assembles the sign document for a single message at the
// account nonce read from chain state.
func NewSignDoc(chainID string, nonce uint64, msg Msg) SignDoc {
	return SignDoc{
		AccountNumber: AccountNumber,
		ChainID:       chainID,
		Fee:           MinimalFee(),
		Memo:          "",
		Msgs:          []Msg{msg},
		Sequence:      SequenceAfter(nonce),
	}
}

// SignBytes returns the canonical serialization of the document: JSON
// with lexicographically sorted object keys.
func (d SignDoc) SignBytes() ([]byte, error) {
	if d.Msgs == nil {
		d.Msgs = []Msg{}
	}
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal sign doc: %w", err)
	}
	sorted, err := sortJSON(data)
	if err != nil {
		return nil, fmt.Errorf("sort sign doc: %w", err)
	}
	return sorted, nil
}

// sortJSON re-encodes data with object keys in lexicographic order.
// Numbers are kept as their literal text so integers beyond 2^53 are
// signed exactly as they are broadcast.
func sortJSON(data []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("trailing data after JSON document")
	}
	return json.Marshal(v)
}
