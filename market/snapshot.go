package market

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// OptionKind identifies one option leg of a parity structure.
type OptionKind string

const (
	Call OptionKind = "CALL"
	Put  OptionKind = "PUT"
)

// Valid reports whether k is one of the two option kinds.
func (k OptionKind) Valid() bool {
	return k == Call || k == Put
}

// Complement returns the other option kind.
func (k OptionKind) Complement() OptionKind {
	if k == Call {
		return Put
	}
	return Call
}

// Provenance labels where a snapshot came from. Degraded snapshots are
// last-known-good values substituted after a quality-gate rejection.
type Provenance string

const (
	SourcePaperSim Provenance = "PAPER_SIMULATION"
	SourceReplay   Provenance = "REPLAY_CSV"
)

// SourceLive labels quotes fetched read-only from a named broker.
func SourceLive(broker string) Provenance {
	return Provenance("LIVE-" + strings.ToUpper(broker))
}

// Degraded marks a provenance as a stale substitute.
func (p Provenance) Degraded() Provenance {
	return p + "/DEGRADED"
}

// IsDegraded reports whether p carries the degraded marker.
func (p Provenance) IsDegraded() bool {
	const suffix = "/DEGRADED"
	return len(p) > len(suffix) && p[len(p)-len(suffix):] == suffix
}

// QuoteSnapshot is one normalized tick of the four prices the parity engine
// needs, plus the ATM strike reference they were quoted against.
type QuoteSnapshot struct {
	Spot    float64
	Futures float64
	Call    float64
	Put     float64
	Strike  int
	Time    time.Time
	Source  Provenance
}

// Validate enforces the construction invariants: positive prices and a strike
// aligned to the instrument's increment.
func (q QuoteSnapshot) Validate(meta InstrumentMeta) error {
	if q.Spot <= 0 || q.Futures <= 0 || q.Call <= 0 || q.Put <= 0 {
		return fmt.Errorf("snapshot has non-positive price (spot=%.2f fut=%.2f call=%.2f put=%.2f)",
			q.Spot, q.Futures, q.Call, q.Put)
	}
	if meta.StrikeIncrement > 0 && q.Strike%meta.StrikeIncrement != 0 {
		return fmt.Errorf("strike %d not a multiple of %d", q.Strike, meta.StrikeIncrement)
	}
	return nil
}

// ATMStrike rounds spot to the nearest strike increment.
func ATMStrike(spot float64, increment int) int {
	if increment <= 0 {
		return int(math.Round(spot))
	}
	return int(math.Round(spot/float64(increment))) * increment
}

// InstrumentMeta describes the contract terms and sanity bounds of a traded
// index. The reference market is NIFTY weekly options.
type InstrumentMeta struct {
	Name            string
	LotSize         int
	StrikeIncrement int
	MinSpot         float64 // sane absolute range, used by the quality gate
	MaxSpot         float64
	MaxOptionFrac   float64 // option price cap as a fraction of spot
	MaxFuturesDev   float64 // max |futures-spot|/spot
}

var Instruments = map[string]InstrumentMeta{
	"NIFTY": {
		Name:            "NIFTY",
		LotSize:         50,
		StrikeIncrement: 50,
		MinSpot:         15000,
		MaxSpot:         30000,
		MaxOptionFrac:   0.15,
		MaxFuturesDev:   0.10,
	},
}
