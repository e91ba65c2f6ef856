package webclienttest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
)

// Relayer is a fake deposit relayer answering with a fixed status.
type Relayer struct {
	srv    *httptest.Server
	status int

	mu       sync.Mutex
	requests []*http.Request
	queries  []url.Values
}

// NewRelayer starts a relayer answering every announcement with status.
func NewRelayer(status int) *Relayer {
	r := &Relayer{status: status}
	r.srv = httptest.NewServer(http.HandlerFunc(r.handle))
	return r
}

func (r *Relayer) handle(w http.ResponseWriter, req *http.Request) {
	_, _ = io.Copy(io.Discard, req.Body)
	r.mu.Lock()
	r.requests = append(r.requests, req)
	r.queries = append(r.queries, req.URL.Query())
	r.mu.Unlock()

	w.WriteHeader(r.status)
	if r.status == http.StatusOK {
		_, _ = io.WriteString(w, "ok")
	} else {
		_, _ = io.WriteString(w, http.StatusText(r.status))
	}
}

// URL returns the relayer's announcement URL.
func (r *Relayer) URL() string { return r.srv.URL + "/address" }

// Close shuts the relayer down.
func (r *Relayer) Close() { r.srv.Close() }

// Hits returns how many announcements the relayer received.
func (r *Relayer) Hits() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.requests)
}

// Methods returns the HTTP methods of received announcements.
func (r *Relayer) Methods() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.requests))
	for i, req := range r.requests {
		out[i] = req.Method
	}
	return out
}

// Queries returns the query parameters of received announcements.
func (r *Relayer) Queries() []url.Values {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]url.Values, len(r.queries))
	copy(out, r.queries)
	return out
}
