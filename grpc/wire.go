package verifiergrpc

import "github.com/blockberries/webclient/types"

// VerifyRequest carries a proof and the root hash it must prove.
type VerifyRequest struct {
	Proof []byte     `cramberry:"1"`
	Root  types.Hash `cramberry:"2"`
}

// VerifyResponse carries the proven entries.
type VerifyResponse struct {
	Entries []types.Entry `cramberry:"1"`
}
