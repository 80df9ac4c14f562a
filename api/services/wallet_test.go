package services

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chaingate/api/types"
)

const oneEtherHex = "0xde0b6b3a7640000"

type memoryCache struct {
	mu   sync.Mutex
	data map[string]*big.Int
}

func (c *memoryCache) Get(_ context.Context, address string) (*big.Int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	wei, ok := c.data[address]
	return wei, ok
}

func (c *memoryCache) Set(_ context.Context, address string, wei *big.Int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[address] = wei
}

func newWalletService(url string, cache BalanceCache) *WalletService {
	return NewWalletService(
		newTestRPC(url),
		NewFixedPriceOracle(map[string]float64{"ETH": 3000}),
		cache,
		discardLogger(),
	)
}

func walletResult(t *testing.T, v any) types.WalletResult {
	t.Helper()
	result, ok := v.(types.WalletResult)
	require.True(t, ok, "expected WalletResult, got %T", v)
	return result
}

func TestQueryWallets_NativeOnly(t *testing.T) {
	upstream := newFakeUpstream(t, map[string]rpcHandler{
		"eth_getBalance": func(params []json.RawMessage) (any, int) {
			return oneEtherHex, 0
		},
		"qn_getWalletTokenBalances": func(params []json.RawMessage) (any, int) {
			return map[string]any{"assets": []any{}}, 0
		},
	})

	svc := newWalletService(upstream.URL, nil)
	results := svc.QueryWallets(context.Background(), types.WalletQuery{
		Wallets:       []string{"0xabc"},
		MinTokenValue: 100,
	})

	result := walletResult(t, results["0xabc"])
	assert.Equal(t, 3000.0, result.TotalValueUSD)
	assert.Equal(t, []types.TokenBalance{{Symbol: "ETH", Balance: 1.0, QuoteUSD: 3000.0}}, result.Tokens)

	params := upstream.params(t, "qn_getWalletTokenBalances", 0)
	assert.Equal(t, "0xabc", params["wallet"])
	assert.Equal(t, false, params["omitMetadata"])
}

func TestQueryWallets_FiltersAndTotals(t *testing.T) {
	upstream := newFakeUpstream(t, map[string]rpcHandler{
		"eth_getBalance": func(params []json.RawMessage) (any, int) {
			// 0.01 ETH -> 30 USD
			return "0x2386f26fc10000", 0
		},
		"qn_getWalletTokenBalances": func(params []json.RawMessage) (any, int) {
			return map[string]any{"assets": []any{
				map[string]any{"assetSymbol": "USDC", "amount": "150.5", "value": 150.505},
				map[string]any{"assetSymbol": "DAI", "amount": "50", "value": "50"},
				map[string]any{"assetSymbol": "USDC", "amount": "10", "value": "10.004"},
				map[string]any{"assetSymbol": "SHIB", "amount": "1"},
			}}, 0
		},
	})

	svc := newWalletService(upstream.URL, nil)

	t.Run("threshold is exclusive", func(t *testing.T) {
		results := svc.QueryWallets(context.Background(), types.WalletQuery{
			Wallets:       []string{"0xabc"},
			MinTokenValue: 50,
		})
		result := walletResult(t, results["0xabc"])

		require.Len(t, result.Tokens, 1)
		assert.Equal(t, "USDC", result.Tokens[0].Symbol)
		assert.Equal(t, "150.5", result.Tokens[0].Balance)
		assert.Equal(t, 150.51, result.TotalValueUSD)
	})

	t.Run("symbol filter spares native entry", func(t *testing.T) {
		results := svc.QueryWallets(context.Background(), types.WalletQuery{
			Wallets:     []string{"0xabc"},
			TokenSymbol: "USDC",
		})
		result := walletResult(t, results["0xabc"])

		symbols := make([]string, 0, len(result.Tokens))
		sum := decimal.Zero
		for _, token := range result.Tokens {
			symbols = append(symbols, token.Symbol)
			sum = sum.Add(decimal.NewFromFloat(token.QuoteUSD))
		}
		assert.Equal(t, []string{"ETH", "USDC", "USDC"}, symbols)
		assert.Equal(t, sum.Round(2).InexactFloat64(), result.TotalValueUSD)
		assert.Equal(t, 190.51, result.TotalValueUSD)
	})

	t.Run("no filter keeps every positive quote", func(t *testing.T) {
		results := svc.QueryWallets(context.Background(), types.WalletQuery{
			Wallets: []string{"0xabc"},
		})
		result := walletResult(t, results["0xabc"])

		assert.Len(t, result.Tokens, 4)
		for _, token := range result.Tokens {
			assert.Greater(t, token.QuoteUSD, 0.0)
		}
	})
}

func TestQueryWallets_IsolatesFailures(t *testing.T) {
	upstream := newFakeUpstream(t, map[string]rpcHandler{
		"eth_getBalance": func(params []json.RawMessage) (any, int) {
			return "0x0", 0
		},
		"qn_getWalletTokenBalances": func(params []json.RawMessage) (any, int) {
			var p map[string]any
			_ = json.Unmarshal(params[0], &p)
			if p["wallet"] == "0xbad" {
				return nil, http.StatusBadGateway
			}
			return map[string]any{"assets": []any{
				map[string]any{"assetSymbol": "DAI", "amount": "5", "value": 5},
			}}, 0
		},
	})

	svc := newWalletService(upstream.URL, nil)
	results := svc.QueryWallets(context.Background(), types.WalletQuery{
		Wallets: []string{"0xgood", "0xbad"},
	})

	require.Len(t, results, 2)
	assert.Equal(t, types.ErrorResponse{Error: "Failed to fetch data for 0xbad"}, results["0xbad"])

	good := walletResult(t, results["0xgood"])
	assert.Equal(t, 5.0, good.TotalValueUSD)
	require.Len(t, good.Tokens, 1)
	assert.Equal(t, "DAI", good.Tokens[0].Symbol)
}

func TestQueryWallets_NativeFailureCountsAsZero(t *testing.T) {
	upstream := newFakeUpstream(t, map[string]rpcHandler{
		"eth_getBalance": func(params []json.RawMessage) (any, int) {
			return nil, http.StatusInternalServerError
		},
		"qn_getWalletTokenBalances": func(params []json.RawMessage) (any, int) {
			return map[string]any{"assets": []any{}}, 0
		},
	})

	svc := newWalletService(upstream.URL, nil)
	results := svc.QueryWallets(context.Background(), types.WalletQuery{
		Wallets: []string{"0xabc"},
	})

	result := walletResult(t, results["0xabc"])
	assert.Zero(t, result.TotalValueUSD)
	assert.NotNil(t, result.Tokens)
	assert.Empty(t, result.Tokens)
}

func TestNativeBalance_UsesCache(t *testing.T) {
	upstream := newFakeUpstream(t, map[string]rpcHandler{
		"eth_getBalance": func(params []json.RawMessage) (any, int) {
			return oneEtherHex, 0
		},
	})

	cache := &memoryCache{data: make(map[string]*big.Int)}
	svc := newWalletService(upstream.URL, cache)

	first := svc.NativeBalance(context.Background(), "0xabc")
	second := svc.NativeBalance(context.Background(), "0xabc")

	assert.True(t, first.Equal(decimal.NewFromInt(1)))
	assert.True(t, second.Equal(first))
	assert.Equal(t, 1, upstream.callCount("eth_getBalance"))
}

func TestNativeBalance_RequestShape(t *testing.T) {
	upstream := newFakeUpstream(t, map[string]rpcHandler{
		"eth_getBalance": func(params []json.RawMessage) (any, int) {
			return "0x1", 0
		},
	})

	svc := newWalletService(upstream.URL, nil)
	balance := svc.NativeBalance(context.Background(), "0xabc")
	assert.Equal(t, "0.000000000000000001", balance.String())

	params := upstream.rawParams(t, "eth_getBalance", 0)
	require.Len(t, params, 2)
	assert.Equal(t, "0xabc", paramString(t, params, 0))
	assert.Equal(t, "latest", paramString(t, params, 1))
}

func TestParseQuote(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"float", 12.5, "12.5"},
		{"string", " 7.25 ", "7.25"},
		{"number", json.Number("3"), "3"},
		{"garbage", "n/a", "0"},
		{"missing", nil, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseQuote(tt.in).String())
		})
	}
}
