package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
	"golang.org/x/time/rate"

	"chaingate/api/metrics"
	"chaingate/api/types"
)

const primaryProvider = "quicknode"

type jsonRPCCaller interface {
	CallForInto(ctx context.Context, out interface{}, method string, params []interface{}) error
}

// statusTransport fails any non-2xx reply before the JSON-RPC layer decodes
// its body, so an error page carrying a valid envelope is not a success.
type statusTransport struct {
	base http.RoundTripper
}

func (t statusTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("http %d", resp.StatusCode)
	}
	return resp, nil
}

// RPCClient issues JSON-RPC 2.0 calls against the primary provider.
type RPCClient struct {
	client  jsonRPCCaller
	limiter *rate.Limiter
	timeout time.Duration
	metrics *metrics.Metrics
}

func NewRPCClient(cfg *types.Config, m *metrics.Metrics) *RPCClient {
	var limiter *rate.Limiter
	if cfg.UpstreamRPS > 0 {
		burst := int(cfg.UpstreamRPS)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.UpstreamRPS), burst)
	}

	return &RPCClient{
		client: jsonrpc.NewClientWithOpts(cfg.UpstreamURL, &jsonrpc.RPCClientOpts{
			HTTPClient: &http.Client{Transport: statusTransport{base: http.DefaultTransport}},
		}),
		limiter: limiter,
		timeout: cfg.UpstreamTimeout,
		metrics: m,
	}
}

// Call invokes method with positional params and decodes the result into out.
func (c *RPCClient) Call(ctx context.Context, out any, method string, params ...any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrUpstream, method, err)
		}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	if params == nil {
		params = []any{}
	}

	err := c.client.CallForInto(ctx, out, method, params)
	c.metrics.ObserveUpstream(primaryProvider, method, err)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrUpstream, method, err)
	}

	return nil
}
