package feed

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/iamdhruvsharma3/arbitrage/market"
)

// Simulator fabricates plausible NIFTY quotes around a base spot. Option
// prices carry random noise, occasionally large enough to open a parity gap,
// so paper runs exercise the whole detect/enter/exit cycle.
type Simulator struct {
	meta market.InstrumentMeta
	rng  *rand.Rand
	now  func() time.Time

	baseSpot float64
}

// wideNoiseProb is how often the simulator injects option noise large enough
// to look like a mispricing.
const wideNoiseProb = 0.25

func NewSimulator(meta market.InstrumentMeta, seed int64) *Simulator {
	return &Simulator{
		meta:     meta,
		rng:      rand.New(rand.NewSource(seed)),
		now:      time.Now,
		baseSpot: 22000,
	}
}

func (s *Simulator) Fetch(ctx context.Context) (market.QuoteSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return market.QuoteSnapshot{}, err
	}

	spot := round2(s.baseSpot + s.uniform(-50, 50))
	futures := round2(spot + s.uniform(-10, 10))
	strike := market.ATMStrike(spot, s.meta.StrikeIncrement)

	snap := market.QuoteSnapshot{
		Spot:    spot,
		Futures: futures,
		Call:    s.optionPrice(spot, strike, market.Call),
		Put:     s.optionPrice(spot, strike, market.Put),
		Strike:  strike,
		Time:    s.now().UTC(),
		Source:  market.SourcePaperSim,
	}
	return snap, nil
}

// optionPrice is intrinsic value plus a crude time-value term plus noise.
// No real pricing model: the point is quotes that sometimes violate parity.
func (s *Simulator) optionPrice(spot float64, strike int, kind market.OptionKind) float64 {
	const (
		volatility    = 0.15
		yearsToExpiry = 7.0 / 365.0
	)

	intrinsic := float64(strike) - spot
	if kind == market.Call {
		intrinsic = spot - float64(strike)
	}
	if intrinsic < 0 {
		intrinsic = 0
	}

	timeValue := spot * volatility * math.Sqrt(yearsToExpiry) * 0.4

	noise := s.uniform(-15, 15)
	if s.rng.Float64() < wideNoiseProb {
		noise = s.uniform(-45, 45)
	}

	price := intrinsic + timeValue + noise
	if price < 1 {
		price = 1
	}
	return round2(price)
}

func (s *Simulator) uniform(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
