package services

import (
	"context"
	"encoding/json"
)

type HolderService struct {
	rpc *RPCClient
}

func NewHolderService(rpc *RPCClient) *HolderService {
	return &HolderService{rpc: rpc}
}

// Holders passes the provider's holder records through untouched.
func (s *HolderService) Holders(ctx context.Context, token string) ([]json.RawMessage, error) {
	var result struct {
		Holders []json.RawMessage `json:"holders"`
	}

	err := s.rpc.Call(ctx, &result, "qn_getTokenHolders", map[string]any{
		"contract": token,
	})
	if err != nil {
		return nil, err
	}

	if result.Holders == nil {
		return []json.RawMessage{}, nil
	}
	return result.Holders, nil
}
