package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/shopspring/decimal"

	"chaingate/api/types"
)

const nativeDecimals = 18

type WalletService struct {
	rpc    *RPCClient
	prices PriceOracle
	cache  BalanceCache
	logger *slog.Logger
}

// NewWalletService builds the balance aggregator. cache may be nil.
func NewWalletService(rpc *RPCClient, prices PriceOracle, cache BalanceCache, logger *slog.Logger) *WalletService {
	return &WalletService{
		rpc:    rpc,
		prices: prices,
		cache:  cache,
		logger: logger,
	}
}

// QueryWallets values every address in turn. The map holds a types.WalletResult
// or a types.ErrorResponse per address.
func (s *WalletService) QueryWallets(ctx context.Context, query types.WalletQuery) map[string]any {
	minValue := decimal.NewFromFloat(query.MinTokenValue)
	results := make(map[string]any, len(query.Wallets))

	for _, address := range query.Wallets {
		result, err := s.queryWallet(ctx, address, query.TokenSymbol, minValue)
		if err != nil {
			s.logger.Warn("wallet query failed", "address", address, "error", err)
			results[address] = types.ErrorResponse{Error: "Failed to fetch data for " + address}
			continue
		}
		results[address] = result
	}

	return results
}

func (s *WalletService) queryWallet(ctx context.Context, address, symbolFilter string, minValue decimal.Decimal) (types.WalletResult, error) {
	ethBalance := s.NativeBalance(ctx, address)

	var tokenResult struct {
		Assets []types.WalletTokenAsset `json:"assets"`
	}
	err := s.rpc.Call(ctx, &tokenResult, "qn_getWalletTokenBalances", map[string]any{
		"wallet":       address,
		"omitMetadata": false,
	})
	if err != nil {
		return types.WalletResult{}, err
	}

	tokens := make([]types.TokenBalance, 0, len(tokenResult.Assets)+1)
	total := decimal.Zero

	ethQuote := ethBalance.Mul(s.nativePrice(ctx))
	if ethQuote.GreaterThan(minValue) {
		tokens = append(tokens, types.TokenBalance{
			Symbol:   NativeSymbol,
			Balance:  ethBalance.InexactFloat64(),
			QuoteUSD: ethQuote.InexactFloat64(),
		})
		total = total.Add(ethQuote)
	}

	for _, asset := range tokenResult.Assets {
		quote := parseQuote(asset.Value)
		if !quote.GreaterThan(minValue) {
			continue
		}
		if symbolFilter != "" && asset.AssetSymbol != symbolFilter {
			continue
		}
		tokens = append(tokens, types.TokenBalance{
			Symbol:   asset.AssetSymbol,
			Balance:  asset.Amount,
			QuoteUSD: quote.InexactFloat64(),
		})
		total = total.Add(quote)
	}

	return types.WalletResult{
		TotalValueUSD: total.Round(2).InexactFloat64(),
		Tokens:        tokens,
	}, nil
}

// NativeBalance returns the address's ETH balance. Lookup failures count as zero.
func (s *WalletService) NativeBalance(ctx context.Context, address string) decimal.Decimal {
	if s.cache != nil {
		if wei, ok := s.cache.Get(ctx, address); ok {
			return weiToEther(wei)
		}
	}

	var raw string
	if err := s.rpc.Call(ctx, &raw, "eth_getBalance", address, "latest"); err != nil {
		s.logger.Warn("native balance lookup failed", "address", address, "error", err)
		return decimal.Zero
	}

	wei, err := hexutil.DecodeBig(strings.TrimSpace(raw))
	if err != nil {
		s.logger.Warn("native balance not a hex quantity", "address", address, "result", raw, "error", err)
		return decimal.Zero
	}

	if s.cache != nil {
		s.cache.Set(ctx, address, wei)
	}

	return weiToEther(wei)
}

func (s *WalletService) nativePrice(ctx context.Context) decimal.Decimal {
	price, err := s.prices.Quote(ctx, NativeSymbol)
	if err != nil {
		s.logger.Warn("native price unavailable", "error", err)
		return decimal.Zero
	}
	return price
}

func weiToEther(wei *big.Int) decimal.Decimal {
	return decimal.NewFromBigInt(wei, -nativeDecimals)
}

// parseQuote accepts the provider's USD value as a number or numeric string.
func parseQuote(v any) decimal.Decimal {
	switch value := v.(type) {
	case float64:
		return decimal.NewFromFloat(value)
	case json.Number:
		d, err := decimal.NewFromString(value.String())
		if err != nil {
			return decimal.Zero
		}
		return d
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}
