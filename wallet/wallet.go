// Package wallet exposes account level operations of the light client:
// verified balance and nonce reads, the chain's transaction messages,
// and deposit address announcements. Every call runs in its own
// session.
package wallet

import (
	"context"
	"fmt"

	"github.com/blockberries/webclient"
	"github.com/blockberries/webclient/accounts"
	"github.com/blockberries/webclient/relay"
	"github.com/blockberries/webclient/session"
	"github.com/blockberries/webclient/submit"
	"github.com/blockberries/webclient/types"

	"go.uber.org/zap"
)

// Wallet binds a signer to a verified transport.
type Wallet struct {
	signer   webclient.Signer
	reader   *accounts.Reader
	pipeline *submit.Pipeline
	relay    *relay.Broadcaster
	logger   *zap.Logger
}

// Option configures a Wallet.
type Option func(*config)

type config struct {
	logger      *zap.Logger
	submitOpts  []submit.Option
	broadcaster *relay.Broadcaster
}

// WithLogger sets the logger passed to the wallet's components.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithSubmitOptions configures the submission pipeline.
func WithSubmitOptions(opts ...submit.Option) Option {
	return func(c *config) { c.submitOpts = append(c.submitOpts, opts...) }
}

// WithBroadcaster sets the relay broadcaster used for deposit
// announcements.
func WithBroadcaster(b *relay.Broadcaster) Option {
	return func(c *config) { c.broadcaster = b }
}

// New creates a Wallet.
func New(t submit.Transport, signer webclient.Signer, opts ...Option) *Wallet {
	c := config{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&c)
	}
	if c.broadcaster == nil {
		c.broadcaster = relay.NewBroadcaster(relay.WithLogger(c.logger))
	}
	submitOpts := append([]submit.Option{submit.WithLogger(c.logger)}, c.submitOpts...)
	return &Wallet{
		signer:   signer,
		reader:   accounts.NewReader(t),
		pipeline: submit.New(t, signer, submitOpts...),
		relay:    c.broadcaster,
		logger:   c.logger,
	}
}

// Address returns the signer's account address.
func (w *Wallet) Address(ctx context.Context) (types.Address, error) {
	addr, err := w.signer.Address(ctx)
	if err != nil {
		return types.Address{}, fmt.Errorf("resolve signer address: %w", err)
	}
	return addr, nil
}

// Nonce returns the verified nonce of addr.
func (w *Wallet) Nonce(ctx context.Context, addr types.Address) (uint64, error) {
	return w.reader.Nonce(ctx, session.New(), addr)
}

// Balance returns the verified native balance of addr.
func (w *Wallet) Balance(ctx context.Context, addr types.Address) (uint64, error) {
	return w.reader.Balance(ctx, session.New(), addr)
}

// Account is a consistent view of one account.
type Account struct {
	Address types.Address
	Height  uint32
	Nonce   uint64
	Balance uint64
}

// Account reads nonce and balance of addr at one pinned height.
func (w *Wallet) Account(ctx context.Context, addr types.Address) (Account, error) {
	sess := session.New()
	balance, err := w.reader.Balance(ctx, sess, addr)
	if err != nil {
		return Account{}, err
	}
	nonce, err := w.reader.Nonce(ctx, sess, addr)
	if err != nil {
		return Account{}, err
	}
	height, _ := sess.Height()
	return Account{Address: addr, Height: height, Nonce: nonce, Balance: balance}, nil
}

// Submit signs and broadcasts msg.
func (w *Wallet) Submit(ctx context.Context, msg types.Msg) (types.BroadcastResult, error) {
	return w.pipeline.Submit(ctx, msg)
}

// Claim claims staking rewards.
func (w *Wallet) Claim(ctx context.Context) (types.BroadcastResult, error) {
	return w.Submit(ctx, ClaimRewardsMsg())
}

// ClaimAirdrop claims the first airdrop.
func (w *Wallet) ClaimAirdrop(ctx context.Context) (types.BroadcastResult, error) {
	return w.Submit(ctx, ClaimAirdrop1Msg())
}

// ClaimBtcDepositAirdrop claims the bitcoin deposit airdrop.
func (w *Wallet) ClaimBtcDepositAirdrop(ctx context.Context) (types.BroadcastResult, error) {
	return w.Submit(ctx, ClaimBtcDepositAirdropMsg())
}

// ClaimBtcWithdrawAirdrop claims the bitcoin withdrawal airdrop.
func (w *Wallet) ClaimBtcWithdrawAirdrop(ctx context.Context) (types.BroadcastResult, error) {
	return w.Submit(ctx, ClaimBtcWithdrawAirdropMsg())
}

// ClaimIbcTransferAirdrop claims the IBC transfer airdrop.
func (w *Wallet) ClaimIbcTransferAirdrop(ctx context.Context) (types.BroadcastResult, error) {
	return w.Submit(ctx, ClaimIbcTransferAirdropMsg())
}

// ClaimIncomingIbcBtc claims bitcoin received over IBC.
func (w *Wallet) ClaimIncomingIbcBtc(ctx context.Context) (types.BroadcastResult, error) {
	return w.Submit(ctx, ClaimIbcBitcoinMsg())
}

// Delegate delegates amount to validator.
func (w *Wallet) Delegate(ctx context.Context, validator types.Address, amount uint64) (types.BroadcastResult, error) {
	me, err := w.Address(ctx)
	if err != nil {
		return types.BroadcastResult{}, err
	}
	return w.Submit(ctx, DelegateMsg(me, validator, amount))
}

// Unbond undelegates amount from validator.
func (w *Wallet) Unbond(ctx context.Context, validator types.Address, amount uint64) (types.BroadcastResult, error) {
	me, err := w.Address(ctx)
	if err != nil {
		return types.BroadcastResult{}, err
	}
	return w.Submit(ctx, UndelegateMsg(me, validator, amount))
}

// Redelegate moves amount of stake from src to dst.
func (w *Wallet) Redelegate(ctx context.Context, src, dst types.Address, amount uint64) (types.BroadcastResult, error) {
	me, err := w.Address(ctx)
	if err != nil {
		return types.BroadcastResult{}, err
	}
	return w.Submit(ctx, RedelegateMsg(me, src, dst, amount))
}

// Withdraw withdraws amount of bridged bitcoin to dst.
func (w *Wallet) Withdraw(ctx context.Context, dst string, amount uint64) (types.BroadcastResult, error) {
	return w.Submit(ctx, WithdrawMsg(dst, amount))
}

// IbcTransferOut sends tokens over IBC. The sender is always the
// signer's address.
func (w *Wallet) IbcTransferOut(ctx context.Context, t IbcTransfer) (types.BroadcastResult, error) {
	me, err := w.Address(ctx)
	if err != nil {
		return types.BroadcastResult{}, err
	}
	t.Sender = me
	return w.Submit(ctx, IbcTransferOutMsg(t))
}

// BroadcastDepositAddress announces that deposits to depositAddr under
// signatory set sigsetIndex are to be credited to dest.
func (w *Wallet) BroadcastDepositAddress(ctx context.Context, dest types.Address, sigsetIndex uint32, relayers []string, depositAddr string) error {
	a := relay.Announcement{
		Commitment:  types.AddressCommitment(dest),
		SigsetIndex: sigsetIndex,
		DepositAddr: depositAddr,
	}
	w.logger.Debug("announcing deposit address",
		zap.Stringer("dest", dest),
		zap.Uint32("sigset_index", sigsetIndex),
		zap.Int("relayers", len(relayers)),
	)
	return w.relay.Announce(ctx, a, relayers)
}
