package risk

import (
	"math"

	"github.com/iamdhruvsharma3/arbitrage/parity"
)

// MarginPerContract estimates margin for one arbitrage contract as half the
// premium difference between the two option legs.
func MarginPerContract(call, put float64) float64 {
	return 0.5 * math.Abs(call-put)
}

// RawSize is the unclamped contract count the capital budget supports.
// Returns 0 when the margin estimate is degenerate.
func RawSize(capitalPerTrade, marginPerContract float64) int {
	if marginPerContract <= 0 {
		return 0
	}
	return int(math.Floor(capitalPerTrade / marginPerContract))
}

// ExpectedProfitPerUnit is the locked profit one unit captures after paying
// round-trip costs on every leg.
func ExpectedProfitPerUnit(parityGap, costPerLeg float64) float64 {
	return parityGap - costPerLeg*parity.Legs
}

// MarginUsage estimates the fraction of starting capital notionally at risk
// for an open position, from the parity gap at entry.
func MarginUsage(entryGap float64, size int, startingCapital float64) float64 {
	if startingCapital <= 0 {
		return math.Inf(1)
	}
	return 0.5 * entryGap * float64(size) / startingCapital
}
