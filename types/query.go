package types

import (
	"encoding/binary"
	"fmt"

	"github.com/blockberries/cramberry/pkg/cramberry"
)

// QueryKind selects which piece of account state a Query reads.
type QueryKind uint8

const (
	QueryNonce QueryKind = iota + 1
	QueryBalance
)

func (k QueryKind) String() string {
	switch k {
	case QueryNonce:
		return "nonce"
	case QueryBalance:
		return "balance"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// Store key prefixes of the account records the typed queries read.
const (
	noncePrefix   byte = 0x01
	balancePrefix byte = 0x02
)

// Query is a typed state query. Its cramberry encoding is the query
// envelope sent to the gateway.
type Query struct {
	Kind    QueryKind `cramberry:"1"`
	Address Address   `cramberry:"2"`
}

// NonceQuery returns the query reading the account nonce of addr.
func NonceQuery(addr Address) Query {
	return Query{Kind: QueryNonce, Address: addr}
}

// BalanceQuery returns the query reading the native balance of addr.
func BalanceQuery(addr Address) Query {
	return Query{Kind: QueryBalance, Address: addr}
}

// Encode returns the binary query envelope.
func (q Query) Encode() ([]byte, error) {
	switch q.Kind {
	case QueryNonce, QueryBalance:
	default:
		return nil, fmt.Errorf("encode query: unknown kind %s", q.Kind)
	}
	data, err := cramberry.Marshal(q)
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}
	return data, nil
}

// DecodeQuery parses a binary query envelope.
func DecodeQuery(data []byte) (Query, error) {
	var q Query
	if err := cramberry.Unmarshal(data, &q); err != nil {
		return Query{}, fmt.Errorf("decode query: %w", err)
	}
	return q, nil
}

// Key returns the store key holding the record the query reads.
func (q Query) Key() []byte {
	var prefix byte
	switch q.Kind {
	case QueryNonce:
		prefix = noncePrefix
	case QueryBalance:
		prefix = balancePrefix
	}
	key := make([]byte, 0, 1+AddressSize)
	key = append(key, prefix)
	return append(key, q.Address[:]...)
}

// EncodeUint64 encodes an account record value.
func EncodeUint64(v uint64) []byte {
	var out [8]byte
	binary.BigEndian.PutUint64(out[:], v)
	return out[:]
}

// DecodeUint64 decodes an 8-byte big-endian account record value.
func DecodeUint64(data []byte) (uint64, error) {
	if len(data) != 8 {
		return 0, fmt.Errorf("expected 8-byte value, got %d bytes", len(data))
	}
	return binary.BigEndian.Uint64(data), nil
}
