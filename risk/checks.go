package risk

import (
	"fmt"

	"github.com/iamdhruvsharma3/arbitrage/parity"
)

// Violation codes. Each rejection names the gate that fired so every decision
// can be audited after the fact.
const (
	CodeTradingDisabled     = "TRADING_DISABLED"
	CodePositionOpen        = "POSITION_OPEN"
	CodeDailyLimit          = "DAILY_LIMIT"
	CodeInsufficientCapital = "INSUFFICIENT_CAPITAL"
	CodeNoEdge              = "NO_EDGE"
	CodeBadLeg              = "BAD_LEG"
)

type Violation struct {
	Code string
	Msg  string
}

// Decision is the gate's verdict on one signal. When Allowed, Size and the
// expected-profit figures authorize the lifecycle manager to open a position;
// no trade object is created here.
type Decision struct {
	Allowed    bool
	Violations []Violation

	Size                  int
	MarginPerContract     float64
	ExpectedProfitPerUnit float64
	ExpectedProfit        float64 // scaled by lot size and size
}

func (d *Decision) reject(code, msg string) {
	d.Violations = append(d.Violations, Violation{Code: code, Msg: msg})
	d.Allowed = false
}

// Reason is the first violation in human-readable form, empty when allowed.
func (d Decision) Reason() string {
	if len(d.Violations) == 0 {
		return ""
	}
	v := d.Violations[0]
	return fmt.Sprintf("%s: %s", v.Code, v.Msg)
}

// SessionView is the slice of session state the gate reads. The engine's
// Session satisfies it; tests can use a literal stub.
type SessionView interface {
	TradingEnabled() bool
	OpenPositions() int
	DailyTradeCount() int
}

// Evaluate applies the sequential entry gates to a detected signal. Gates are
// hard rejects: the first failure ends evaluation, there is no retry within a
// tick.
func Evaluate(p Policy, sig *parity.Signal, s SessionView) Decision {
	d := Decision{Allowed: true}

	// 1. Kill switch.
	if !s.TradingEnabled() {
		d.reject(CodeTradingDisabled, "trading disabled by safety protocol")
		return d
	}

	// 2. Single position at a time.
	if s.OpenPositions() >= p.MaxOpenPositions {
		d.reject(CodePositionOpen,
			fmt.Sprintf("open positions %d >= max %d", s.OpenPositions(), p.MaxOpenPositions))
		return d
	}

	// 3. Daily trade budget.
	if s.DailyTradeCount() >= p.MaxTradesPerDay {
		d.reject(CodeDailyLimit,
			fmt.Sprintf("daily trades %d >= max %d", s.DailyTradeCount(), p.MaxTradesPerDay))
		return d
	}

	// 4. Margin-based sizing, then the hard contract cap. The cap is a
	// circuit breaker against sizing-formula error, not an optimization.
	d.MarginPerContract = MarginPerContract(sig.Call, sig.Put)
	raw := RawSize(p.CapitalPerTrade(), d.MarginPerContract)
	if raw < 1 {
		d.reject(CodeInsufficientCapital,
			fmt.Sprintf("budget %.2f buys %d contracts at margin %.2f",
				p.CapitalPerTrade(), raw, d.MarginPerContract))
		return d
	}
	d.Size = raw
	if d.Size > p.MaxPositionSize {
		d.Size = p.MaxPositionSize
	}

	// 5. The full contract must still lock in a strictly positive profit.
	d.ExpectedProfitPerUnit = ExpectedProfitPerUnit(sig.ParityGap, p.CostPerLeg)
	d.ExpectedProfit = d.ExpectedProfitPerUnit * float64(p.LotSize) * float64(d.Size)
	if d.ExpectedProfit <= 0 {
		d.reject(CodeNoEdge,
			fmt.Sprintf("expected profit %.2f <= 0 (gap %.2f, costs %.2f/unit)",
				d.ExpectedProfit, sig.ParityGap, p.CostPerLeg*parity.Legs))
		return d
	}

	// 6. Defensive check against a malformed signal.
	if !sig.Expensive.Valid() || !sig.Cheap.Valid() || sig.Expensive == sig.Cheap {
		d.reject(CodeBadLeg,
			fmt.Sprintf("invalid leg labels expensive=%q cheap=%q", sig.Expensive, sig.Cheap))
		return d
	}

	return d
}
