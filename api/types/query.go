package types

type ContractQuery struct {
	ContractAddress string `json:"contract_address"`
}

type NftQuery struct {
	WalletAddress string `json:"wallet_address"`
}

type TokenHolderQuery struct {
	TokenAddress string `json:"token_address"`
}
