package catalog

import "sync/atomic"

// FetchGate hands out a token per issued fetch and answers whether a token is
// still the latest. A response arriving under a stale token is discarded, so
// a slow old request can never overwrite the result of a newer one.
type FetchGate struct {
	latest atomic.Uint64
}

// Begin registers a new fetch and returns its token.
func (g *FetchGate) Begin() uint64 {
	return g.latest.Add(1)
}

// Accept reports whether the given token is still the latest issued.
func (g *FetchGate) Accept(token uint64) bool {
	return g.latest.Load() == token
}
