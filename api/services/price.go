package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const NativeSymbol = "ETH"

// PriceOracle returns the USD price of one unit of symbol.
type PriceOracle interface {
	Quote(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// FixedPriceOracle serves a static price table. It stands in for a live feed.
type FixedPriceOracle struct {
	prices map[string]decimal.Decimal
}

func NewFixedPriceOracle(prices map[string]float64) *FixedPriceOracle {
	table := make(map[string]decimal.Decimal, len(prices))
	for symbol, price := range prices {
		table[strings.ToUpper(symbol)] = decimal.NewFromFloat(price)
	}
	return &FixedPriceOracle{prices: table}
}

func (o *FixedPriceOracle) Quote(_ context.Context, symbol string) (decimal.Decimal, error) {
	price, ok := o.prices[strings.ToUpper(strings.TrimSpace(symbol))]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrNoPrice, symbol)
	}
	return price, nil
}
