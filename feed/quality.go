package feed

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/iamdhruvsharma3/arbitrage/market"
)

// QualityGate screens snapshots from untrusted sources before the engine
// sees them. Simulated and replayed data is trusted by construction; live
// quotes are not.
type QualityGate struct {
	Meta   market.InstrumentMeta
	MaxAge time.Duration
}

func NewQualityGate(meta market.InstrumentMeta) QualityGate {
	return QualityGate{Meta: meta, MaxAge: 5 * time.Minute}
}

// Check returns a descriptive error when the snapshot is unusable. Pure.
func (g QualityGate) Check(snap market.QuoteSnapshot, now time.Time) error {
	if snap.Spot <= 0 || snap.Futures <= 0 || snap.Call <= 0 || snap.Put <= 0 {
		return fmt.Errorf("non-positive price: spot=%.2f futures=%.2f call=%.2f put=%.2f",
			snap.Spot, snap.Futures, snap.Call, snap.Put)
	}
	if snap.Spot < g.Meta.MinSpot || snap.Spot > g.Meta.MaxSpot {
		return fmt.Errorf("spot %.2f outside sane range [%.0f, %.0f]",
			snap.Spot, g.Meta.MinSpot, g.Meta.MaxSpot)
	}
	if limit := g.Meta.MaxOptionFrac * snap.Spot; snap.Call > limit || snap.Put > limit {
		return fmt.Errorf("option price beyond %.0f%% of spot: call=%.2f put=%.2f limit=%.2f",
			g.Meta.MaxOptionFrac*100, snap.Call, snap.Put, limit)
	}
	if dev := math.Abs(snap.Futures-snap.Spot) / snap.Spot; dev > g.Meta.MaxFuturesDev {
		return fmt.Errorf("futures %.2f deviates %.1f%% from spot %.2f (max %.0f%%)",
			snap.Futures, dev*100, snap.Spot, g.Meta.MaxFuturesDev*100)
	}
	if age := now.Sub(snap.Time); age > g.MaxAge {
		return fmt.Errorf("snapshot stale: age %s > %s", age.Round(time.Second), g.MaxAge)
	}
	if atm := market.ATMStrike(snap.Spot, g.Meta.StrikeIncrement); snap.Strike != atm {
		return fmt.Errorf("strike %d is not the ATM strike %d for spot %.2f",
			snap.Strike, atm, snap.Spot)
	}
	return nil
}

// Gated wraps a provider with the quality gate. A rejected snapshot falls
// back to the last good one, re-labeled degraded so downstream audit shows
// the substitution. With no last-good to fall back on, Fetch fails: the gate
// never fabricates data.
type Gated struct {
	src  Provider
	gate QualityGate
	now  func() time.Time

	lastGood *market.QuoteSnapshot
}

func NewGated(src Provider, gate QualityGate) *Gated {
	return &Gated{src: src, gate: gate, now: time.Now}
}

func (g *Gated) Fetch(ctx context.Context) (market.QuoteSnapshot, error) {
	snap, err := g.src.Fetch(ctx)
	if err != nil {
		return market.QuoteSnapshot{}, err
	}

	if err := g.gate.Check(snap, g.now()); err != nil {
		if g.lastGood == nil {
			return market.QuoteSnapshot{}, fmt.Errorf("%w: %v", ErrNoData, err)
		}
		stale := *g.lastGood
		stale.Source = stale.Source.Degraded()
		return stale, nil
	}

	g.lastGood = &snap
	return snap, nil
}
