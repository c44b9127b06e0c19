package feed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/iamdhruvsharma3/arbitrage/market"
)

var qt0 = time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC)

func goodSnap(ts time.Time) market.QuoteSnapshot {
	return market.QuoteSnapshot{
		Spot:    22000,
		Futures: 22010,
		Call:    150,
		Put:     80,
		Strike:  22000,
		Time:    ts,
		Source:  market.SourceLive("zerodha"),
	}
}

func TestQualityGateCheck(t *testing.T) {
	t.Parallel()

	gate := NewQualityGate(market.Instruments["NIFTY"])
	now := qt0.Add(time.Second)

	tests := []struct {
		name    string
		mutate  func(*market.QuoteSnapshot)
		wantErr string
	}{
		{"valid", func(s *market.QuoteSnapshot) {}, ""},
		{"zero call", func(s *market.QuoteSnapshot) { s.Call = 0 }, "non-positive"},
		{"negative put", func(s *market.QuoteSnapshot) { s.Put = -5 }, "non-positive"},
		{"spot too low", func(s *market.QuoteSnapshot) { s.Spot = 14000; s.Futures = 14010; s.Strike = 14000 }, "sane range"},
		{"spot too high", func(s *market.QuoteSnapshot) { s.Spot = 31000; s.Futures = 31010; s.Strike = 31000 }, "sane range"},
		{"call beyond spot fraction", func(s *market.QuoteSnapshot) { s.Call = 0.2 * 22000 }, "option price"},
		{"futures far from spot", func(s *market.QuoteSnapshot) { s.Futures = 25000 }, "deviates"},
		{"stale", func(s *market.QuoteSnapshot) { s.Time = now.Add(-6 * time.Minute) }, "stale"},
		{"off-ATM strike", func(s *market.QuoteSnapshot) { s.Strike = 21500 }, "not the ATM strike"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			snap := goodSnap(qt0)
			tt.mutate(&snap)

			err := gate.Check(snap, now)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

type fakeProvider struct {
	snaps []market.QuoteSnapshot
	i     int
}

func (f *fakeProvider) Fetch(ctx context.Context) (market.QuoteSnapshot, error) {
	if f.i >= len(f.snaps) {
		return market.QuoteSnapshot{}, ErrExhausted
	}
	s := f.snaps[f.i]
	f.i++
	return s, nil
}

func TestGatedFallsBackToLastGood(t *testing.T) {
	t.Parallel()

	bad := goodSnap(qt0.Add(time.Second))
	bad.Futures = 25000

	g := NewGated(&fakeProvider{snaps: []market.QuoteSnapshot{goodSnap(qt0), bad}},
		NewQualityGate(market.Instruments["NIFTY"]))
	g.now = func() time.Time { return qt0.Add(2 * time.Second) }

	first, err := g.Fetch(context.Background())
	assert.NoError(t, err)
	assert.False(t, first.Source.IsDegraded())

	second, err := g.Fetch(context.Background())
	assert.NoError(t, err)
	assert.True(t, second.Source.IsDegraded())
	// the fallback is the previous good snapshot, not the rejected one
	assert.InDelta(t, 22010, second.Futures, 1e-9)
	assert.True(t, second.Time.Equal(first.Time))
}

func TestGatedNoFallbackMeansNoData(t *testing.T) {
	t.Parallel()

	bad := goodSnap(qt0)
	bad.Call = 0

	g := NewGated(&fakeProvider{snaps: []market.QuoteSnapshot{bad}},
		NewQualityGate(market.Instruments["NIFTY"]))
	g.now = func() time.Time { return qt0 }

	_, err := g.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrNoData)
}

func TestGatedPropagatesSourceError(t *testing.T) {
	t.Parallel()

	g := NewGated(&fakeProvider{}, NewQualityGate(market.Instruments["NIFTY"]))

	_, err := g.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrExhausted)
}
