package webclienttest

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/blockberries/webclient/types"
)

// QueryRequest records one query received by a Gateway.
type QueryRequest struct {
	Query []byte
	// Height is the ?height= parameter, nil when absent.
	Height *uint32
	URL    string
}

// Gateway is an in-memory REST gateway. It answers queries with
// envelopes carrying FakeProof proofs of the queried account record
// and records every broadcast transaction.
//
// Response heights follow Heights: the n-th query is served at
// Heights[n], and the last entry repeats. With no Heights every query
// is served at height 1.
type Gateway struct {
	srv *httptest.Server

	mu       sync.Mutex
	records  map[string][]byte
	heights  []uint32
	queries  []QueryRequest
	txs      [][]byte
	nonceFor *types.Address

	// Hooks override the default handlers when set.
	QueryHook func(w http.ResponseWriter, r *http.Request) bool
	TxsHook   func(w http.ResponseWriter, body []byte) bool
}

// NewGateway starts a gateway serving at the given heights.
func NewGateway(heights ...uint32) *Gateway {
	g := &Gateway{
		records: make(map[string][]byte),
		heights: heights,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/query/", g.handleQuery)
	mux.HandleFunc("/txs", g.handleTxs)
	g.srv = httptest.NewServer(mux)
	return g
}

// URL returns the gateway's base URL.
func (g *Gateway) URL() string { return g.srv.URL }

// Close shuts the gateway down.
func (g *Gateway) Close() { g.srv.Close() }

// SetNonce stores the nonce record of addr.
func (g *Gateway) SetNonce(addr types.Address, nonce uint64) {
	g.set(types.NonceQuery(addr).Key(), types.EncodeUint64(nonce))
}

// SetBalance stores the balance record of addr.
func (g *Gateway) SetBalance(addr types.Address, balance uint64) {
	g.set(types.BalanceQuery(addr).Key(), types.EncodeUint64(balance))
}

// IncrementNonceOnTx makes every accepted broadcast bump the nonce of
// addr, the way the chain does after executing a transaction.
func (g *Gateway) IncrementNonceOnTx(addr types.Address) {
	g.mu.Lock()
	defer g.mu.Unlock()
	a := addr
	g.nonceFor = &a
}

func (g *Gateway) set(key, value []byte) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.records[string(key)] = value
}

// SetHeights replaces the height script and restarts it.
func (g *Gateway) SetHeights(heights ...uint32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.heights = heights
	g.queries = nil
}

// Queries returns every query received so far.
func (g *Gateway) Queries() []QueryRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]QueryRequest, len(g.queries))
	copy(out, g.queries)
	return out
}

// Txs returns the decoded bodies of every broadcast received so far.
func (g *Gateway) Txs() [][]byte {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([][]byte, len(g.txs))
	copy(out, g.txs)
	return out
}

func (g *Gateway) handleQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if g.QueryHook != nil && g.QueryHook(w, r) {
		return
	}

	query, err := hex.DecodeString(strings.TrimPrefix(r.URL.Path, "/query/"))
	if err != nil {
		http.Error(w, "invalid query hex", http.StatusBadRequest)
		return
	}

	req := QueryRequest{Query: query, URL: r.URL.String()}
	if hs := r.URL.Query().Get("height"); hs != "" {
		h, err := strconv.ParseUint(hs, 10, 32)
		if err != nil {
			http.Error(w, "invalid height", http.StatusBadRequest)
			return
		}
		h32 := uint32(h)
		req.Height = &h32
	}

	g.mu.Lock()
	height := uint32(1)
	if n := len(g.heights); n > 0 {
		i := len(g.queries)
		if i >= n {
			i = n - 1
		}
		height = g.heights[i]
	}
	g.queries = append(g.queries, req)

	var entries []types.Entry
	if q, err := types.DecodeQuery(query); err == nil {
		key := q.Key()
		if v, ok := g.records[string(key)]; ok {
			entries = append(entries, types.Entry{Key: key, Value: v})
		}
	}
	g.mu.Unlock()

	proof, root := FakeProof(entries...)
	env := types.ResponseEnvelope{Height: height, RootHash: root, Proof: proof}
	_, _ = io.WriteString(w, env.Base64())
}

func (g *Gateway) handleTxs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	tx, err := base64.StdEncoding.DecodeString(string(payload))
	if err != nil {
		http.Error(w, "invalid base64 tx", http.StatusBadRequest)
		return
	}
	if g.TxsHook != nil && g.TxsHook(w, tx) {
		return
	}

	g.mu.Lock()
	g.txs = append(g.txs, tx)
	n := len(g.txs)
	if g.nonceFor != nil {
		key := string(types.NonceQuery(*g.nonceFor).Key())
		var nonce uint64
		if v, ok := g.records[key]; ok {
			nonce, _ = types.DecodeUint64(v)
		}
		g.records[key] = types.EncodeUint64(nonce + 1)
	}
	g.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"check_tx":   map[string]any{"code": 0, "log": ""},
		"deliver_tx": map[string]any{"code": 0, "log": ""},
		"height":     strconv.Itoa(n),
		"hash":       fmt.Sprintf("%064X", n),
	})
}

// RawGateway serves the same body with the same status to every
// request. Useful for malformed-response tests.
func RawGateway(status int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
}
