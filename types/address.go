package types

import (
	"encoding/json"
	"fmt"

	"github.com/cosmos/cosmos-sdk/types/bech32"
)

// AddressPrefix is the bech32 human-readable part of account addresses.
const AddressPrefix = "nomic"

// AddressSize is the size of an account address in bytes.
const AddressSize = 20

// Address is a 20-byte account address.
type Address [AddressSize]byte

// ParseAddress decodes a bech32 account address. The prefix must be
// AddressPrefix.
func ParseAddress(s string) (Address, error) {
	var addr Address
	hrp, data, err := bech32.DecodeAndConvert(s)
	if err != nil {
		return addr, fmt.Errorf("invalid address %q: %w", s, err)
	}
	if hrp != AddressPrefix {
		return addr, fmt.Errorf("invalid address %q: expected prefix %q, got %q", s, AddressPrefix, hrp)
	}
	if len(data) != AddressSize {
		return addr, fmt.Errorf("invalid address %q: expected %d bytes, got %d", s, AddressSize, len(data))
	}
	copy(addr[:], data)
	return addr, nil
}

// AddressFromBytes copies a raw 20-byte address.
func AddressFromBytes(data []byte) (Address, error) {
	var addr Address
	if len(data) != AddressSize {
		return addr, fmt.Errorf("address must be %d bytes, got %d", AddressSize, len(data))
	}
	copy(addr[:], data)
	return addr, nil
}

// String returns the bech32 encoding of the address.
func (a Address) String() string {
	s, err := bech32.ConvertAndEncode(AddressPrefix, a[:])
	if err != nil {
		// Only reachable with an invalid prefix constant.
		panic(err)
	}
	return s
}

// Bytes returns a copy of the raw address bytes.
func (a Address) Bytes() []byte {
	out := make([]byte, AddressSize)
	copy(out, a[:])
	return out
}

// MarshalJSON encodes the address as its bech32 string.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON decodes a bech32 address string.
func (a *Address) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
