// Package signer signs sign documents with a raw secp256k1 key.
package signer

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/blockberries/webclient"
	"github.com/blockberries/webclient/types"

	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
)

var _ webclient.Signer = (*KeySigner)(nil)

// KeySigner holds a secp256k1 private key in memory.
type KeySigner struct {
	priv *secp256k1.PrivKey
	addr types.Address
}

// New creates a KeySigner for priv.
func New(priv *secp256k1.PrivKey) (*KeySigner, error) {
	if priv == nil || len(priv.Key) != secp256k1.PrivKeySize {
		return nil, fmt.Errorf("invalid secp256k1 private key")
	}
	addr, err := types.AddressFromBytes(priv.PubKey().Address())
	if err != nil {
		return nil, err
	}
	return &KeySigner{priv: priv, addr: addr}, nil
}

// Generate creates a KeySigner for a fresh random key.
func Generate() *KeySigner {
	s, err := New(secp256k1.GenPrivKey())
	if err != nil {
		panic(err)
	}
	return s
}

// FromHex parses a hex encoded 32-byte private key.
func FromHex(s string) (*KeySigner, error) {
	key, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("decode private key: %w", err)
	}
	return New(&secp256k1.PrivKey{Key: key})
}

// FromFile reads a hex encoded private key from path.
func FromFile(path string) (*KeySigner, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read key file: %w", err)
	}
	return FromHex(string(data))
}

// Hex returns the hex encoding of the private key.
func (s *KeySigner) Hex() string {
	return hex.EncodeToString(s.priv.Key)
}

// Address returns the account address of the key.
func (s *KeySigner) Address(context.Context) (types.Address, error) {
	return s.addr, nil
}

// PubKey returns the compressed public key.
func (s *KeySigner) PubKey() []byte {
	return s.priv.PubKey().Bytes()
}

// Sign signs the SHA-256 digest of signBytes.
func (s *KeySigner) Sign(ctx context.Context, signBytes []byte) (types.Signature, error) {
	if err := ctx.Err(); err != nil {
		return types.Signature{}, err
	}
	sig, err := s.priv.Sign(signBytes)
	if err != nil {
		return types.Signature{}, fmt.Errorf("secp256k1 sign: %w", err)
	}
	return types.Signature{
		PubKey:    types.PubKey{Type: types.PubKeySecp256k1Type, Value: s.PubKey()},
		Signature: sig,
	}, nil
}

// Verify reports whether sig is a valid signature of signBytes by pub.
func Verify(pub []byte, signBytes, sig []byte) bool {
	if len(pub) != secp256k1.PubKeySize {
		return false
	}
	return (&secp256k1.PubKey{Key: pub}).VerifySignature(signBytes, sig)
}
