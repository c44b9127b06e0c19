package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/iamdhruvsharma3/arbitrage/market"
)

// StoreProvider adapts a SnapshotStore to the Provider interface. An empty
// store or a snapshot older than MaxAge yields ErrNoData: the loop would
// rather stop than trade on a dead stream.
type StoreProvider struct {
	Store  *market.SnapshotStore
	MaxAge time.Duration

	now func() time.Time
}

func NewStoreProvider(store *market.SnapshotStore, maxAge time.Duration) *StoreProvider {
	return &StoreProvider{Store: store, MaxAge: maxAge, now: time.Now}
}

func (p *StoreProvider) Fetch(ctx context.Context) (market.QuoteSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return market.QuoteSnapshot{}, err
	}

	snap, err := p.Store.Latest()
	if err != nil {
		return market.QuoteSnapshot{}, fmt.Errorf("%w: %v", ErrNoData, err)
	}

	if age := p.now().Sub(snap.Time); p.MaxAge > 0 && age > p.MaxAge {
		return market.QuoteSnapshot{}, fmt.Errorf("%w: last tick is %s old", ErrNoData, age.Round(time.Second))
	}
	return snap, nil
}
