// Package engine runs the arbitrage decision loop: detect a parity breach,
// gate it through risk, carry the single open position, settle it on exit.
// All trading is hypothetical; the engine never places orders.
package engine

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/iamdhruvsharma3/arbitrage/journal"
	"github.com/iamdhruvsharma3/arbitrage/market"
	"github.com/iamdhruvsharma3/arbitrage/parity"
	"github.com/iamdhruvsharma3/arbitrage/pkg/id"
	"github.com/iamdhruvsharma3/arbitrage/risk"
)

// Entry-cost abort codes. These fire after the risk gate admits a signal but
// before a position is created, so they never consume a daily trade slot.
const (
	CodeEntryCostSanity  = "ENTRY_COST_SANITY"
	CodeEntryCostCeiling = "ENTRY_COST_CEILING"
)

const (
	// entryCostSanityMult rejects entries whose cash flow dwarfs the edge;
	// such quotes are almost certainly bad data.
	entryCostSanityMult = 5.0

	// entryCostCapitalMult rejects entries whose cash flow exceeds a
	// multiple of starting capital.
	entryCostCapitalMult = 2.0

	// anomalyLossMult flags settlements that lose more than this multiple
	// of the expected profit.
	anomalyLossMult = 2.0
)

// SnapshotProvider yields quote snapshots. feed implementations satisfy it.
type SnapshotProvider interface {
	Fetch(ctx context.Context) (market.QuoteSnapshot, error)
}

type Engine struct {
	mu sync.Mutex

	policy  risk.Policy
	rule    ExitRule
	mode    Settlement
	session *Session
	journal journal.Journal
	sink    Sink
}

func New(policy risk.Policy, rule ExitRule, mode Settlement, j journal.Journal, sink Sink) *Engine {
	if j == nil {
		j = journal.Nop{}
	}
	if sink == nil {
		sink = NopSink{}
	}
	return &Engine{
		policy:  policy,
		rule:    rule,
		mode:    mode,
		session: NewSession(),
		journal: j,
		sink:    sink,
	}
}

// Session exposes the run state for inspection. Callers must not mutate it
// while the engine is running.
func (e *Engine) Session() *Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session
}

// Report is a point-in-time view of the run, safe to serve concurrently.
type Report struct {
	Time            time.Time `json:"time"`
	TradingEnabled  bool      `json:"trading_enabled"`
	DailyTradeCount int       `json:"daily_trade_count"`
	TotalPL         float64   `json:"total_pl"`
	ClosedTrades    int       `json:"closed_trades"`
	OpenPosition    *Position `json:"open_position,omitempty"`
}

func (e *Engine) Status() Report {
	e.mu.Lock()
	defer e.mu.Unlock()

	r := Report{
		Time:            time.Now().UTC(),
		TradingEnabled:  e.session.TradingEnabled(),
		DailyTradeCount: e.session.DailyTradeCount(),
		TotalPL:         e.session.TotalPL(),
		ClosedTrades:    e.session.ClosedTrades(),
	}
	if p := e.session.Open(); p != nil {
		cp := *p
		r.OpenPosition = &cp
	}
	return r
}

// OnSnapshot advances the loop by one tick. Every snapshot is processed to
// completion: detection, gating, entry, then monitoring of a position that
// was already open when the tick began. Rejections are emitted as events,
// never returned as errors; only journal failures surface here.
func (e *Engine) OnSnapshot(snap market.QuoteSnapshot) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.session.resetDailyIfNeeded(snap.Time)

	wasOpen := e.session.Open()

	if sig := parity.Detect(snap, e.policy.CostPerLeg, e.policy.MinProfit); sig != nil {
		e.sink.Emit(Event{Kind: KindDetection, Time: snap.Time, Signal: sig})
		e.tryEnter(sig, snap.Time)
	}

	if wasOpen != nil {
		if reason, exit := shouldExit(wasOpen, snap, e.rule); exit {
			if err := e.close(wasOpen, snap, reason); err != nil {
				return err
			}
		}
	}
	return nil
}

// tryEnter gates the signal and, when admitted, opens a position. The daily
// counter moves only when a position is actually created.
func (e *Engine) tryEnter(sig *parity.Signal, now time.Time) {
	dec := risk.Evaluate(e.policy, sig, e.session)
	if !dec.Allowed {
		e.sink.Emit(Event{
			Kind:     KindRejection,
			Time:     now,
			Signal:   sig,
			Decision: &dec,
			Reason:   dec.Reason(),
		})
		return
	}

	p := newPosition(id.New(), sig, dec, e.policy.LotSize, e.policy.CostPerLeg, e.mode, now)

	if reason, ok := e.entryCostAbort(p); ok {
		e.sink.Emit(Event{
			Kind:     KindRejection,
			Time:     now,
			Signal:   sig,
			Decision: &dec,
			Reason:   reason,
		})
		return
	}

	e.session.admit(p)
	e.sink.Emit(Event{Kind: KindEntry, Time: now, Signal: sig, Decision: &dec, Position: p})
}

// entryCostAbort screens the computed entry cash flow against the expected
// edge and against capital. Either breach drops the trade before it exists.
func (e *Engine) entryCostAbort(p *Position) (string, bool) {
	cost := math.Abs(p.EntryCost)

	if cost > entryCostSanityMult*math.Abs(p.ExpectedProfit) {
		return fmt.Sprintf("%s: |entry cost| %.2f > %.0fx |expected profit| %.2f",
			CodeEntryCostSanity, cost, entryCostSanityMult, math.Abs(p.ExpectedProfit)), true
	}
	if cost > entryCostCapitalMult*e.policy.StartingCapital {
		return fmt.Sprintf("%s: |entry cost| %.2f > %.0fx starting capital %.2f",
			CodeEntryCostCeiling, cost, entryCostCapitalMult, e.policy.StartingCapital), true
	}
	return "", false
}

// close settles the position, updates the session, and records the trade.
// A settlement losing more than anomalyLossMult times the expected profit
// additionally raises an anomaly event; the settlement itself stands.
func (e *Engine) close(p *Position, snap market.QuoteSnapshot, reason string) error {
	realized := p.settle(snap, reason, e.policy.CostPerLeg)
	e.session.close(p, e.policy.DisableAfterLoss)

	e.sink.Emit(Event{Kind: KindExit, Time: snap.Time, Position: p, Reason: reason})

	if realized < -anomalyLossMult*p.ExpectedProfit {
		e.sink.Emit(Event{
			Kind:     KindAnomaly,
			Time:     snap.Time,
			Position: p,
			Reason: fmt.Sprintf("realized %.2f below -%.0fx expected %.2f",
				realized, anomalyLossMult, p.ExpectedProfit),
		})
	}

	if err := e.journal.RecordTrade(toRecord(p)); err != nil {
		return fmt.Errorf("record trade %s: %w", p.ID, err)
	}
	if err := e.journal.RecordSession(journal.SessionSnapshot{
		Time:            snap.Time,
		TotalPL:         e.session.TotalPL(),
		DailyTradeCount: e.session.DailyTradeCount(),
		TradingEnabled:  e.session.TradingEnabled(),
		ClosedTrades:    e.session.ClosedTrades(),
	}); err != nil {
		return fmt.Errorf("record session: %w", err)
	}
	return nil
}

func toRecord(p *Position) journal.TradeRecord {
	return journal.TradeRecord{
		TradeID:        p.ID,
		EntryTime:      p.EntryTime,
		ExitTime:       p.ExitTime,
		Strike:         p.Strike,
		Size:           p.Size,
		LotSize:        p.LotSize,
		CallQty:        p.CallQty,
		PutQty:         p.PutQty,
		FuturesQty:     p.FuturesQty,
		EntryCall:      p.EntryCall,
		EntryPut:       p.EntryPut,
		EntryFutures:   p.EntryFutures,
		ExitCall:       p.ExitCall,
		ExitPut:        p.ExitPut,
		ExitFutures:    p.ExitFutures,
		EntryGap:       p.EntryGap,
		ExitGap:        p.ExitGap,
		ExpectedProfit: p.ExpectedProfit,
		EntryCost:      p.EntryCost,
		RealizedPL:     p.RealizedPL,
		ExitReason:     p.ExitReason,
		Mode:           string(p.Mode),
	}
}

// Run polls the provider on a fixed interval until ctx is cancelled or the
// provider fails. A snapshot picked up before cancellation is evaluated to
// completion; cancellation is honored only at tick boundaries.
func (e *Engine) Run(ctx context.Context, provider SnapshotProvider, interval time.Duration) error {
	tick := time.NewTicker(interval)
	defer tick.Stop()

	for {
		snap, err := provider.Fetch(ctx)
		if err != nil {
			return fmt.Errorf("fetch snapshot: %w", err)
		}
		if err := e.OnSnapshot(snap); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
		}
	}
}
