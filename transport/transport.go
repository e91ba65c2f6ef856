// Package transport implements the verified query transport and the
// signed-transaction broadcast of the REST gateway.
//
// A query is a single HTTP round trip:
//
//	GET {endpoint}/query/{hex(query)}[?height={h}]
//
// answered by a base64 body decoding to [height:4 BE][root:32][proof].
// The transport pins the session to the first height it observes,
// hands the proof to the ProofVerifier and returns the verified view.
// Nothing is retried; retries belong to the caller.
package transport

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/blockberries/webclient"
	"github.com/blockberries/webclient/session"
	"github.com/blockberries/webclient/types"

	"go.uber.org/zap"
)

// DefaultMaxBodyBytes bounds how much of a response body is read.
const DefaultMaxBodyBytes int64 = 16 << 20

// Client is the verified query transport. It is safe for concurrent
// use; the per-operation state lives in the session.Session passed to
// each call.
type Client struct {
	endpoints webclient.EndpointResolver
	verifier  webclient.ProofVerifier
	httpc     *http.Client
	logger    *zap.Logger
	maxBody   int64
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client. Timeouts are a property of this
// client; the transport does not add its own.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpc = hc }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithMaxBodyBytes bounds the size of response bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(c *Client) { c.maxBody = n }
}

// New creates a transport reading the gateway URL from endpoints and
// verifying proofs with verifier.
func New(endpoints webclient.EndpointResolver, verifier webclient.ProofVerifier, opts ...Option) *Client {
	c := &Client{
		endpoints: endpoints,
		verifier:  verifier,
		httpc:     http.DefaultClient,
		logger:    zap.NewNop(),
		maxBody:   DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// QueryURL builds the query URL for endpoint and query bytes, pinned
// to height when pinned is true.
func QueryURL(endpoint string, query []byte, height uint32, pinned bool) string {
	url := strings.TrimRight(endpoint, "/") + "/query/" + hex.EncodeToString(query)
	if pinned {
		url += "?height=" + strconv.FormatUint(uint64(height), 10)
	}
	return url
}

// Query performs one verified state query within sess.
//
// Errors are typed: *webclient.ConfigError (no endpoint, before any
// I/O), *webclient.TransportError, *webclient.DecodeError,
// *webclient.ConsistencyError and *webclient.ProofError.
func (c *Client) Query(ctx context.Context, sess *session.Session, query []byte) (*types.VerifiedStore, error) {
	endpoint, err := c.endpoint(ctx)
	if err != nil {
		return nil, err
	}

	height, isPinned := sess.Height()
	url := QueryURL(endpoint, query, height, isPinned)

	c.logger.Debug("query",
		zap.String("session", sess.ID()),
		zap.String("url", url),
		zap.String("pin", sess.State()),
	)

	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	env, err := types.DecodeResponseEnvelopeBase64(strings.TrimSpace(string(body)))
	if err != nil {
		return nil, webclient.NewDecodeError(err)
	}

	if err := sess.Observe(env.Height); err != nil {
		c.logger.Warn("height mismatch",
			zap.String("session", sess.ID()),
			zap.Error(err),
		)
		return nil, err
	}

	entries, err := c.verifier.Verify(ctx, env.Proof, env.RootHash)
	if err != nil {
		return nil, webclient.NewProofError(env.Height, err)
	}

	store, err := types.NewVerifiedStore(env.Height, env.RootHash, entries)
	if err != nil {
		return nil, webclient.NewProofError(env.Height, err)
	}
	return store, nil
}

// QueryTyped encodes q and performs Query.
func (c *Client) QueryTyped(ctx context.Context, sess *session.Session, q types.Query) (*types.VerifiedStore, error) {
	data, err := q.Encode()
	if err != nil {
		return nil, err
	}
	return c.Query(ctx, sess, data)
}

func (c *Client) endpoint(ctx context.Context) (string, error) {
	endpoint, err := c.endpoints.Endpoint(ctx)
	if err != nil {
		if _, ok := webclient.IsConfig(err); ok {
			return "", err
		}
		return "", webclient.NewConfigError(webclient.EndpointKey, err)
	}
	if endpoint == "" {
		return "", webclient.NewConfigError(webclient.EndpointKey, webclient.ErrNoEndpoint)
	}
	return endpoint, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, webclient.NewTransportError(url, 0, err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, webclient.NewTransportError(url, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, c.maxBody))
		return nil, webclient.NewTransportError(url, resp.StatusCode, nil)
	}

	body, err := readBody(resp.Body, c.maxBody)
	if err != nil {
		return nil, webclient.NewTransportError(url, 0, err)
	}
	return body, nil
}

var errBodyTooLarge = errors.New("response body too large")

func readBody(r io.Reader, limit int64) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("%w: limit %d bytes", errBodyTooLarge, limit)
	}
	return body, nil
}
