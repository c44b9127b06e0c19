// Package parity computes the put-call parity deviation and decides whether a
// quote snapshot presents an arbitrage opportunity.
//
// The true signal is the parity gap:
//
//	|(call - put) - (futures - strike)|
//
// The naive call-put gap is reported only for diagnostics and never gates a
// decision.
package parity

import (
	"math"

	"github.com/iamdhruvsharma3/arbitrage/market"
)

// Legs is the leg count of one side of the structure: sell the expensive
// option, buy the cheap option, plus one implied hedge allowance.
const Legs = 3

// Signal is an arbitrage opportunity detected from a single snapshot. It is
// immutable; it captures the prices it was computed from so the sizer and
// lifecycle manager never re-read the feed.
type Signal struct {
	ParityGap  float64 // true parity deviation, per unit
	CallPutGap float64 // |call - put|, informational only

	Expensive market.OptionKind
	Cheap     market.OptionKind

	Spot    float64
	Futures float64
	Call    float64
	Put     float64
	Strike  int
}

// Gap returns the absolute put-call parity deviation for the given prices.
func Gap(call, put, futures float64, strike int) float64 {
	return math.Abs((call - put) - (futures - float64(strike)))
}

// Classify labels the higher-priced option as expensive. An exact tie makes
// the put expensive.
func Classify(call, put float64) (expensive, cheap market.OptionKind) {
	if call > put {
		return market.Call, market.Put
	}
	return market.Put, market.Call
}

// RequiredGap is the minimum parity gap worth acting on: round-trip costs for
// all legs plus the configured minimum profit.
func RequiredGap(costPerLeg, minProfit float64) float64 {
	return costPerLeg*Legs + minProfit
}

// Detect evaluates one snapshot and returns a Signal if the parity gap clears
// the required threshold, nil otherwise. Detect is a pure function of its
// inputs: the same snapshot always yields the same signal.
func Detect(snap market.QuoteSnapshot, costPerLeg, minProfit float64) *Signal {
	gap := Gap(snap.Call, snap.Put, snap.Futures, snap.Strike)
	if gap <= RequiredGap(costPerLeg, minProfit) {
		return nil
	}

	expensive, cheap := Classify(snap.Call, snap.Put)
	return &Signal{
		ParityGap:  gap,
		CallPutGap: math.Abs(snap.Call - snap.Put),
		Expensive:  expensive,
		Cheap:      cheap,
		Spot:       snap.Spot,
		Futures:    snap.Futures,
		Call:       snap.Call,
		Put:        snap.Put,
		Strike:     snap.Strike,
	}
}
