// Package feed supplies quote snapshots to the engine: a paper simulator,
// CSV replay, a read-only broker client, a websocket stream, and a quality
// gate that screens anything untrusted before the loop sees it.
package feed

import (
	"context"
	"errors"

	"github.com/iamdhruvsharma3/arbitrage/market"
)

// Provider yields the next snapshot to evaluate. Fetch blocks at most for
// the lifetime of ctx.
type Provider interface {
	Fetch(ctx context.Context) (market.QuoteSnapshot, error)
}

// ErrNoData means the source has nothing usable and no fallback exists.
// Callers treat it as fatal.
var ErrNoData = errors.New("feed: no usable market data")

// ErrExhausted marks the clean end of a finite feed, such as a replay file.
var ErrExhausted = errors.New("feed: exhausted")
