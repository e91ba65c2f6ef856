package transport

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/blockberries/webclient"
	"github.com/blockberries/webclient/types"

	"go.uber.org/zap"
)

// TxsURL returns the write-path URL of endpoint.
func TxsURL(endpoint string) string {
	return strings.TrimRight(endpoint, "/") + "/txs"
}

// txOutcome is the subset of a Tendermint-style broadcast result the
// transport inspects. Gateways answering with anything else are
// treated as opaque.
type txOutcome struct {
	Code      uint32 `json:"code"`
	Codespace string `json:"codespace"`
	Log       string `json:"log"`
}

type broadcastBody struct {
	CheckTx   *txOutcome     `json:"check_tx"`
	DeliverTx *txOutcome     `json:"deliver_tx"`
	TxResult  *txOutcome     `json:"tx_result"`
	Result    *broadcastBody `json:"result"`
}

// rejection returns the first non-zero outcome in body, if any.
func (b *broadcastBody) rejection() *txOutcome {
	if b == nil {
		return nil
	}
	for _, o := range []*txOutcome{b.CheckTx, b.DeliverTx, b.TxResult} {
		if o != nil && o.Code != 0 {
			return o
		}
	}
	return b.Result.rejection()
}

// Broadcast posts a serialized signed envelope to {endpoint}/txs. The
// request body is the base64 encoding of tx.
//
// The response body is returned verbatim on success. A network
// failure, a non-2xx status or a structured rejection with a non-zero
// result code is a *webclient.BroadcastError; nothing is retried.
func (c *Client) Broadcast(ctx context.Context, tx []byte) (types.BroadcastResult, error) {
	endpoint, err := c.endpoint(ctx)
	if err != nil {
		return types.BroadcastResult{}, err
	}
	url := TxsURL(endpoint)

	payload := base64.StdEncoding.EncodeToString(tx)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBufferString(payload))
	if err != nil {
		return types.BroadcastResult{}, webclient.NewBroadcastError(0, 0, "", err)
	}
	req.Header.Set("Content-Type", "text/plain")

	c.logger.Debug("broadcast", zap.String("url", url), zap.Int("tx_bytes", len(tx)))

	resp, err := c.httpc.Do(req)
	if err != nil {
		return types.BroadcastResult{}, webclient.NewBroadcastError(0, 0, "", err)
	}
	defer resp.Body.Close()

	body, err := readBody(resp.Body, c.maxBody)
	if err != nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return types.BroadcastResult{}, webclient.NewBroadcastError(resp.StatusCode, 0, "", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return types.BroadcastResult{}, webclient.NewBroadcastError(resp.StatusCode, 0, string(body), nil)
	}

	var parsed broadcastBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		if o := parsed.rejection(); o != nil {
			return types.BroadcastResult{}, webclient.NewBroadcastError(resp.StatusCode, o.Code, o.Log, nil)
		}
	}

	c.logger.Debug("broadcast accepted", zap.String("response", string(body)))
	return types.BroadcastResult{Raw: body}, nil
}
