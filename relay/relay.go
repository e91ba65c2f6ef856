// Package relay announces deposit commitments to bitcoin relayers.
package relay

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/blockberries/webclient"
	"github.com/blockberries/webclient/types"

	"go.uber.org/zap"
)

// maxLoggedBody caps how much of a relayer response is read for the log.
const maxLoggedBody = 64 << 10

// Announcement is one deposit commitment announced to relayers.
type Announcement struct {
	Commitment  types.DepositCommitment
	SigsetIndex uint32
	DepositAddr string
}

// URL returns the announcement URL for relayer.
func (a Announcement) URL(relayer string) string {
	return relayer +
		"?dest_bytes=" + url.QueryEscape(a.Commitment.Base64()) +
		"&sigset_index=" + strconv.FormatUint(uint64(a.SigsetIndex), 10) +
		"&deposit_addr=" + url.QueryEscape(a.DepositAddr)
}

// Broadcaster posts announcements to relayers one at a time.
type Broadcaster struct {
	httpc  *http.Client
	logger *zap.Logger
}

// Option configures a Broadcaster.
type Option func(*Broadcaster)

// WithHTTPClient sets the HTTP client used for announcements.
func WithHTTPClient(hc *http.Client) Option {
	return func(b *Broadcaster) { b.httpc = hc }
}

// WithLogger sets the broadcaster logger.
func WithLogger(l *zap.Logger) Option {
	return func(b *Broadcaster) { b.logger = l }
}

// NewBroadcaster creates a Broadcaster.
func NewBroadcaster(opts ...Option) *Broadcaster {
	b := &Broadcaster{
		httpc:  http.DefaultClient,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Announce posts a to every relayer in order. The first relayer that
// cannot be reached or answers with a status other than 200 aborts the
// announcement with a *webclient.RelayerError; later relayers are not
// contacted and earlier ones are not rolled back. An empty relayer
// list is a no-op.
func (b *Broadcaster) Announce(ctx context.Context, a Announcement, relayers []string) error {
	for _, relayer := range relayers {
		if err := b.announce(ctx, a, relayer); err != nil {
			return err
		}
	}
	return nil
}

func (b *Broadcaster) announce(ctx context.Context, a Announcement, relayer string) error {
	target := a.URL(relayer)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, nil)
	if err != nil {
		return webclient.NewRelayerError(relayer, 0, err)
	}

	resp, err := b.httpc.Do(req)
	if err != nil {
		return webclient.NewRelayerError(relayer, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		b.logger.Warn("relayer rejected announcement",
			zap.String("relayer", relayer),
			zap.Int("status", resp.StatusCode),
		)
		return webclient.NewRelayerError(relayer, resp.StatusCode, nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxLoggedBody))
	if err != nil {
		return webclient.NewRelayerError(relayer, 0, err)
	}
	b.logger.Info("relayer response",
		zap.String("relayer", relayer),
		zap.String("body", string(body)),
	)
	return nil
}
