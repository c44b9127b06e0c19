// Package journal persists closed trades and session snapshots. The engine
// holds only the in-memory ledger; everything durable goes through a Journal
// sink.
package journal

import "time"

// TradeRecord is one settled arbitrage trade, flattened for storage.
type TradeRecord struct {
	TradeID   string
	EntryTime time.Time
	ExitTime  time.Time

	Strike  int
	Size    int
	LotSize int

	// Signed leg quantities: negative = short, positive = long.
	CallQty    int
	PutQty     int
	FuturesQty int

	EntryCall    float64
	EntryPut     float64
	EntryFutures float64
	ExitCall     float64
	ExitPut      float64
	ExitFutures  float64

	EntryGap       float64
	ExitGap        float64
	ExpectedProfit float64
	EntryCost      float64
	RealizedPL     float64

	ExitReason string
	Mode       string // settlement mode the trade was accounted under
}

// SessionSnapshot is a point-in-time view of the running session.
type SessionSnapshot struct {
	Time            time.Time
	TotalPL         float64
	DailyTradeCount int
	TradingEnabled  bool
	ClosedTrades    int
}

type Journal interface {
	RecordTrade(TradeRecord) error
	RecordSession(SessionSnapshot) error
	Close() error
}

// Nop discards everything. Useful for runs that only want console output.
type Nop struct{}

func (Nop) RecordTrade(TradeRecord) error       { return nil }
func (Nop) RecordSession(SessionSnapshot) error { return nil }
func (Nop) Close() error                        { return nil }
