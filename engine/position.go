package engine

import (
	"fmt"
	"time"

	"github.com/iamdhruvsharma3/arbitrage/market"
	"github.com/iamdhruvsharma3/arbitrage/parity"
	"github.com/iamdhruvsharma3/arbitrage/risk"
)

type Status string

const (
	StatusOpen   Status = "OPEN"
	StatusClosed Status = "CLOSED"
)

// Settlement selects how a closed position is marked to P&L.
type Settlement string

const (
	// SettleFull revalues every leg at exit prices.
	SettleFull Settlement = "full"

	// SettleConvergence credits a fraction of the expected profit
	// proportional to how far the parity gap closed. Used in shadow runs
	// where exit fills are not observable.
	SettleConvergence Settlement = "convergence"
)

func (s Settlement) Valid() bool {
	return s == SettleFull || s == SettleConvergence
}

// Position is one hypothetical parity trade: short the expensive option,
// long the cheap one, same strike, same size. The futures leg is carried
// for reporting but never traded.
type Position struct {
	ID        string
	EntryTime time.Time

	Strike  int
	Size    int
	LotSize int

	// Signed quantities in contracts: negative = short, positive = long.
	CallQty    int
	PutQty     int
	FuturesQty int

	EntryCall    float64
	EntryPut     float64
	EntryFutures float64

	EntryGap   float64
	CallPutGap float64

	ExpectedProfitPerUnit float64
	ExpectedProfit        float64

	// EntryCost is the net cash flow at entry (positive = credit) less
	// per-leg transaction costs. Informational only.
	EntryCost float64

	Status     Status
	ExitReason string
	ExitTime   time.Time

	ExitCall    float64
	ExitPut     float64
	ExitFutures float64
	ExitGap     float64

	RealizedPL float64
	Mode       Settlement
}

// newPosition builds an open position from an admitted signal. The expensive
// option is sold, the cheap one bought, one contract ratio on both legs.
func newPosition(id string, sig *parity.Signal, dec risk.Decision, lotSize int, costPerLeg float64, mode Settlement, now time.Time) *Position {
	p := &Position{
		ID:        id,
		EntryTime: now,

		Strike:  sig.Strike,
		Size:    dec.Size,
		LotSize: lotSize,

		EntryCall:    sig.Call,
		EntryPut:     sig.Put,
		EntryFutures: sig.Futures,

		EntryGap:   sig.ParityGap,
		CallPutGap: sig.CallPutGap,

		ExpectedProfitPerUnit: dec.ExpectedProfitPerUnit,
		ExpectedProfit:        dec.ExpectedProfit,

		Status: StatusOpen,
		Mode:   mode,
	}

	if sig.Expensive == market.Call {
		p.CallQty = -dec.Size
		p.PutQty = dec.Size
	} else {
		p.CallQty = dec.Size
		p.PutQty = -dec.Size
	}

	p.EntryCost = legCashFlow(p.CallQty, sig.Call, lotSize) +
		legCashFlow(p.PutQty, sig.Put, lotSize) -
		float64(parity.Legs)*costPerLeg

	p.mustBeConsistent()
	return p
}

// legCashFlow is the signed cash movement of filling one leg: buying
// (qty > 0) pays out, selling takes in.
func legCashFlow(qty int, price float64, lotSize int) float64 {
	return -float64(qty) * price * float64(lotSize)
}

// mustBeConsistent panics on a malformed position. These are construction
// bugs, not market conditions.
func (p *Position) mustBeConsistent() {
	if abs(p.CallQty) != p.Size || abs(p.PutQty) != p.Size {
		panic(fmt.Sprintf("position %s: leg size mismatch call=%d put=%d size=%d",
			p.ID, p.CallQty, p.PutQty, p.Size))
	}
	if p.FuturesQty != 0 {
		panic(fmt.Sprintf("position %s: futures leg must stay flat, got %d", p.ID, p.FuturesQty))
	}
	if (p.CallQty < 0) == (p.PutQty < 0) {
		panic(fmt.Sprintf("position %s: exactly one leg must be short, call=%d put=%d",
			p.ID, p.CallQty, p.PutQty))
	}
}

// settle closes the position at the quoted exit prices and returns the
// realized P&L under the position's settlement mode.
func (p *Position) settle(snap market.QuoteSnapshot, reason string, costPerLeg float64) float64 {
	p.ExitTime = snap.Time
	p.ExitCall = snap.Call
	p.ExitPut = snap.Put
	p.ExitFutures = snap.Futures
	p.ExitGap = parity.Gap(snap.Call, snap.Put, snap.Futures, p.Strike)
	p.ExitReason = reason
	p.Status = StatusClosed

	switch p.Mode {
	case SettleConvergence:
		p.RealizedPL = p.ExpectedProfit * p.convergenceRatio() * convergenceCapture
	default:
		p.RealizedPL = p.legPL(p.CallQty, p.EntryCall, snap.Call) +
			p.legPL(p.PutQty, p.EntryPut, snap.Put) -
			2*float64(parity.Legs)*costPerLeg
	}
	return p.RealizedPL
}

// convergenceCapture discounts the theoretical edge for slippage and
// imperfect exits when settling on gap convergence alone.
const convergenceCapture = 0.85

func (p *Position) legPL(qty int, entry, exit float64) float64 {
	return (exit - entry) * float64(qty) * float64(p.LotSize)
}

// convergenceRatio is how much of the entry gap has closed, capped at 1.
// A widening gap yields a negative ratio and therefore a loss.
func (p *Position) convergenceRatio() float64 {
	if p.EntryGap == 0 {
		return 0
	}
	r := (p.EntryGap - p.ExitGap) / p.EntryGap
	if r > 1 {
		r = 1
	}
	return r
}

// Age is the holding time as of now.
func (p *Position) Age(now time.Time) time.Duration {
	return now.Sub(p.EntryTime)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
