package services

import "errors"

var (
	// ErrUpstream wraps every failure that originates at a data provider.
	ErrUpstream = errors.New("upstream request failed")
	ErrNoPrice  = errors.New("no price for symbol")
)
