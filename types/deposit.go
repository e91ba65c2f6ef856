package types

import "encoding/base64"

// Commitment variants. The variant byte prefixes the destination.
const (
	commitmentAddress byte = 0x00
)

// DepositCommitment identifies where a deposit to the bridge should be
// credited. It is announced unmodified to every relayer.
type DepositCommitment struct {
	variant byte
	dest    []byte
}

// AddressCommitment commits a deposit to a native account.
func AddressCommitment(addr Address) DepositCommitment {
	return DepositCommitment{variant: commitmentAddress, dest: addr.Bytes()}
}

// Bytes returns the commitment encoding: variant byte followed by the
// destination bytes.
func (c DepositCommitment) Bytes() []byte {
	out := make([]byte, 0, 1+len(c.dest))
	out = append(out, c.variant)
	return append(out, c.dest...)
}

// Base64 returns the canonical base64 representation.
func (c DepositCommitment) Base64() string {
	return base64.StdEncoding.EncodeToString(c.Bytes())
}
