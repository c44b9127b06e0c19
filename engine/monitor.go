package engine

import (
	"fmt"
	"time"

	"github.com/iamdhruvsharma3/arbitrage/market"
	"github.com/iamdhruvsharma3/arbitrage/parity"
	"github.com/iamdhruvsharma3/arbitrage/risk"
)

// ExitRule bounds how long and how deep an open position may run.
type ExitRule struct {
	// ExitThreshold closes the trade once the parity gap shrinks below it.
	ExitThreshold float64

	// MaxDuration closes the trade on time regardless of the gap.
	MaxDuration time.Duration

	// MaxMarginUsage closes the trade when carried margin exceeds this
	// fraction of starting capital.
	MaxMarginUsage float64

	StartingCapital float64
}

// shouldExit checks the open position against the current quote and returns
// a human-readable reason when any exit condition holds. Checks run in fixed
// order and the first hit wins. Pure: neither the position nor the session
// is touched.
func shouldExit(p *Position, snap market.QuoteSnapshot, rule ExitRule) (string, bool) {
	gap := parity.Gap(snap.Call, snap.Put, snap.Futures, p.Strike)
	if gap < rule.ExitThreshold {
		return fmt.Sprintf("parity restored: gap %.2f < %.2f", gap, rule.ExitThreshold), true
	}

	if age := p.Age(snap.Time); age > rule.MaxDuration {
		return fmt.Sprintf("time limit: held %s > %s", age.Round(time.Second), rule.MaxDuration), true
	}

	usage := risk.MarginUsage(p.EntryGap, p.Size, rule.StartingCapital)
	if usage > rule.MaxMarginUsage {
		return fmt.Sprintf("margin breach: usage %.1f%% > %.1f%%", usage*100, rule.MaxMarginUsage*100), true
	}

	return "", false
}
