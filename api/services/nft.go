package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"chaingate/api/metrics"
)

// NftProvider fetches the NFTs owned by a wallet from one data source.
type NftProvider interface {
	Name() string
	FetchNfts(ctx context.Context, wallet string) ([]json.RawMessage, error)
}

// QuickNodeNftProvider pages through qn_fetchNFTs on the primary endpoint.
type QuickNodeNftProvider struct {
	rpc      *RPCClient
	pageSize int
	maxPages int
	logger   *slog.Logger
}

func NewQuickNodeNftProvider(rpc *RPCClient, pageSize, maxPages int, logger *slog.Logger) *QuickNodeNftProvider {
	return &QuickNodeNftProvider{rpc: rpc, pageSize: pageSize, maxPages: maxPages, logger: logger}
}

func (p *QuickNodeNftProvider) Name() string { return primaryProvider }

func (p *QuickNodeNftProvider) FetchNfts(ctx context.Context, wallet string) ([]json.RawMessage, error) {
	var assets []json.RawMessage

	for page := 1; page <= p.maxPages; page++ {
		var result struct {
			Assets []json.RawMessage `json:"assets"`
		}
		err := p.rpc.Call(ctx, &result, "qn_fetchNFTs", map[string]any{
			"wallet":     wallet,
			"omitFields": []string{},
			"page":       page,
			"perPage":    p.pageSize,
		})
		if err != nil {
			// Earlier pages already hold usable records; keep them.
			if page > 1 && len(assets) > 0 {
				p.logger.Warn("nft page fetch failed, returning earlier pages", "wallet", wallet, "page", page, "error", err)
				return assets, nil
			}
			return nil, err
		}
		if len(result.Assets) == 0 {
			break
		}
		assets = append(assets, result.Assets...)
	}

	return assets, nil
}

// RestNftProvider queries a Moralis style REST API authenticated by X-API-Key.
type RestNftProvider struct {
	baseURL  string
	apiKey   string
	chain    string
	pageSize int
	timeout  time.Duration
	metrics  *metrics.Metrics
}

func NewRestNftProvider(baseURL, apiKey, chain string, pageSize int, timeout time.Duration, m *metrics.Metrics) *RestNftProvider {
	return &RestNftProvider{
		baseURL:  baseURL,
		apiKey:   apiKey,
		chain:    chain,
		pageSize: pageSize,
		timeout:  timeout,
		metrics:  m,
	}
}

func (p *RestNftProvider) Name() string { return "moralis" }

func (p *RestNftProvider) FetchNfts(ctx context.Context, wallet string) ([]json.RawMessage, error) {
	items, err := p.fetch(ctx, wallet)
	p.metrics.ObserveUpstream(p.Name(), "GET /nft", err)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUpstream, p.Name(), err)
	}
	return items, nil
}

func (p *RestNftProvider) fetch(ctx context.Context, wallet string) ([]json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("chain", p.chain)
	query.Set("format", "decimal")
	query.Set("limit", strconv.Itoa(p.pageSize))

	agent := fiber.Get(fmt.Sprintf("%s/%s/nft", p.baseURL, url.PathEscape(wallet)))
	agent.QueryString(query.Encode())
	agent.Set("X-API-Key", p.apiKey)
	agent.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if timeout := p.deadline(ctx); timeout > 0 {
		agent.Timeout(timeout)
	}

	if err := agent.Parse(); err != nil {
		return nil, err
	}

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if code != fiber.StatusOK {
		return nil, fmt.Errorf("http %d", code)
	}

	var out struct {
		Result []json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return out.Result, nil
}

func (p *RestNftProvider) deadline(ctx context.Context) time.Duration {
	timeout := p.timeout
	if d, ok := ctx.Deadline(); ok {
		if remaining := time.Until(d); timeout <= 0 || remaining < timeout {
			timeout = remaining
		}
	}
	return timeout
}

// NftService walks an ordered provider chain until one returns NFTs.
type NftService struct {
	providers []NftProvider
	limit     int
	logger    *slog.Logger
}

func NewNftService(providers []NftProvider, limit int, logger *slog.Logger) *NftService {
	return &NftService{providers: providers, limit: limit, logger: logger}
}

// WalletNfts returns at most limit records from the first provider with a
// non-empty answer. An empty slice with a nil error means every provider that
// answered had nothing. An error means no provider answered at all.
func (s *NftService) WalletNfts(ctx context.Context, wallet string) ([]json.RawMessage, error) {
	var errs []error
	answered := false

	for _, provider := range s.providers {
		items, err := provider.FetchNfts(ctx, wallet)
		if err != nil {
			s.logger.Warn("nft provider failed", "provider", provider.Name(), "wallet", wallet, "error", err)
			errs = append(errs, err)
			continue
		}
		answered = true
		if len(items) == 0 {
			s.logger.Debug("nft provider returned nothing", "provider", provider.Name(), "wallet", wallet)
			continue
		}
		if len(items) > s.limit {
			items = items[:s.limit]
		}
		return items, nil
	}

	if !answered {
		if len(errs) == 0 {
			return nil, fmt.Errorf("%w: no nft providers configured", ErrUpstream)
		}
		return nil, errors.Join(errs...)
	}

	return []json.RawMessage{}, nil
}
