package types

type WalletQuery struct {
	Wallets       []string `json:"wallets"`
	TokenSymbol   string   `json:"token_symbol,omitempty"`
	MinTokenValue float64  `json:"min_token_value,omitempty"`
}

type TokenBalance struct {
	Symbol   string  `json:"symbol"`
	Balance  any     `json:"balance"`
	QuoteUSD float64 `json:"quote_usd"`
}

type WalletResult struct {
	TotalValueUSD float64        `json:"total_value_usd"`
	Tokens        []TokenBalance `json:"tokens"`
}

// WalletTokenAsset is one entry of the upstream qn_getWalletTokenBalances result.
type WalletTokenAsset struct {
	Address     string `json:"address"`
	Name        string `json:"name"`
	AssetSymbol string `json:"assetSymbol"`
	Decimals    any    `json:"decimals"`
	Amount      any    `json:"amount"`
	Value       any    `json:"value"`
}
