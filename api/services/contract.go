package services

import (
	"context"
	"sort"
)

const engagerPageSize = 100

type ContractService struct {
	rpc *RPCClient
}

func NewContractService(rpc *RPCClient) *ContractService {
	return &ContractService{rpc: rpc}
}

// Engagers returns the distinct senders found in the first page of the
// contract's transaction history, sorted ascending.
func (s *ContractService) Engagers(ctx context.Context, contract string) ([]string, error) {
	var result struct {
		Transactions []struct {
			From string `json:"from"`
		} `json:"transactions"`
	}

	err := s.rpc.Call(ctx, &result, "qn_getTransactionsByAddress", map[string]any{
		"address":   contract,
		"page":      1,
		"perPage":   engagerPageSize,
		"direction": "both",
	})
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(result.Transactions))
	engagers := make([]string, 0, len(result.Transactions))
	for _, tx := range result.Transactions {
		if tx.From == "" {
			continue
		}
		if _, dup := seen[tx.From]; dup {
			continue
		}
		seen[tx.From] = struct{}{}
		engagers = append(engagers, tx.From)
	}
	sort.Strings(engagers)

	return engagers, nil
}
