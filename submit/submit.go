// Package submit implements the transaction submission pipeline: read
// the account nonce through the verified transport, assemble and sign
// the canonical sign document, and broadcast the signed envelope.
package submit

import (
	"context"
	"fmt"
	"sync"

	"github.com/blockberries/webclient"
	"github.com/blockberries/webclient/accounts"
	"github.com/blockberries/webclient/session"
	"github.com/blockberries/webclient/types"

	"go.uber.org/zap"
)

// Transport is the subset of the verified transport the pipeline uses.
type Transport interface {
	accounts.Querier
	Broadcast(ctx context.Context, tx []byte) (types.BroadcastResult, error)
}

// Pipeline signs and broadcasts messages on behalf of one signer.
type Pipeline struct {
	transport Transport
	signer    webclient.Signer
	reader    *accounts.Reader
	chainID   string
	logger    *zap.Logger

	serialize bool
	locks     sync.Map // types.Address -> *sync.Mutex
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithChainID sets the chain id written into sign documents.
func WithChainID(id string) Option {
	return func(p *Pipeline) { p.chainID = id }
}

// WithLogger sets the pipeline logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithSerializedSubmissions holds a per-account lock from the nonce
// read until the broadcast returns, so concurrent submissions from one
// account in this process never sign the same sequence.
func WithSerializedSubmissions() Option {
	return func(p *Pipeline) { p.serialize = true }
}

// New creates a Pipeline.
func New(t Transport, signer webclient.Signer, opts ...Option) *Pipeline {
	p := &Pipeline{
		transport: t,
		signer:    signer,
		reader:    accounts.NewReader(t),
		chainID:   types.DefaultChainID,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ChainID returns the chain id the pipeline signs for.
func (p *Pipeline) ChainID() string { return p.chainID }

// Submit signs msg at the signer's next sequence and broadcasts it.
// Each call runs in its own session. A failed nonce read aborts the
// submission before anything is signed.
func (p *Pipeline) Submit(ctx context.Context, msg types.Msg) (types.BroadcastResult, error) {
	addr, err := p.signer.Address(ctx)
	if err != nil {
		return types.BroadcastResult{}, fmt.Errorf("resolve signer address: %w", err)
	}

	if p.serialize {
		mu := p.lock(addr)
		mu.Lock()
		defer mu.Unlock()
	}

	sess := session.New()
	nonce, err := p.reader.Nonce(ctx, sess, addr)
	if err != nil {
		return types.BroadcastResult{}, err
	}

	doc := types.NewSignDoc(p.chainID, nonce, msg)
	signBytes, err := doc.SignBytes()
	if err != nil {
		return types.BroadcastResult{}, err
	}
	sig, err := p.signer.Sign(ctx, signBytes)
	if err != nil {
		return types.BroadcastResult{}, fmt.Errorf("sign: %w", err)
	}

	tx, err := types.NewSignedTx(doc, sig).Marshal()
	if err != nil {
		return types.BroadcastResult{}, err
	}

	p.logger.Info("submitting transaction",
		zap.String("session", sess.ID()),
		zap.Stringer("signer", addr),
		zap.String("msg_type", msg.Type),
		zap.String("sequence", doc.Sequence),
	)
	return p.transport.Broadcast(ctx, tx)
}

func (p *Pipeline) lock(addr types.Address) *sync.Mutex {
	mu, _ := p.locks.LoadOrStore(addr, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
