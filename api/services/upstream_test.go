package services

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"chaingate/api/metrics"
	"chaingate/api/types"
)

// rpcHandler answers one JSON-RPC method. A non-zero status is written as a
// plain-text HTTP error instead of a result.
type rpcHandler func(params []json.RawMessage) (result any, status int)

type fakeUpstream struct {
	*httptest.Server

	mu    sync.Mutex
	calls map[string][][]json.RawMessage
}

func newFakeUpstream(t *testing.T, handlers map[string]rpcHandler) *fakeUpstream {
	t.Helper()

	f := &fakeUpstream{calls: make(map[string][][]json.RawMessage)}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     any               `json:"id"`
			Method string            `json:"method"`
			Params []json.RawMessage `json:"params"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		f.mu.Lock()
		f.calls[req.Method] = append(f.calls[req.Method], req.Params)
		f.mu.Unlock()

		handler, ok := handlers[req.Method]
		if !ok {
			http.Error(w, "unexpected method "+req.Method, http.StatusNotFound)
			return
		}

		result, status := handler(req.Params)
		if status != 0 {
			http.Error(w, "upstream unavailable", status)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result":  result,
		})
	}))
	t.Cleanup(f.Close)

	return f
}

func (f *fakeUpstream) callCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls[method])
}

func (f *fakeUpstream) params(t *testing.T, method string, call int) map[string]any {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()

	require.Greater(t, len(f.calls[method]), call)
	require.NotEmpty(t, f.calls[method][call])
	var out map[string]any
	require.NoError(t, json.Unmarshal(f.calls[method][call][0], &out))
	return out
}

func (f *fakeUpstream) rawParams(t *testing.T, method string, call int) []json.RawMessage {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()

	require.Greater(t, len(f.calls[method]), call)
	return f.calls[method][call]
}

func testConfig(url string) *types.Config {
	return &types.Config{
		UpstreamURL:    url,
		EthUSDPrice:    3000,
		MaxWallets:     100,
		NftPageSize:    50,
		NftMaxPages:    5,
		NftResultLimit: 10,
	}
}

func newTestRPC(url string) *RPCClient {
	return NewRPCClient(testConfig(url), metrics.New())
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func paramString(t *testing.T, params []json.RawMessage, i int) string {
	t.Helper()
	var s string
	require.NoError(t, json.Unmarshal(params[i], &s))
	return s
}
