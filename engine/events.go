package engine

import (
	"time"

	"github.com/iamdhruvsharma3/arbitrage/parity"
	"github.com/iamdhruvsharma3/arbitrage/risk"
)

// Kind classifies an engine event.
type Kind string

const (
	KindDetection Kind = "DETECTION"
	KindRejection Kind = "REJECTION"
	KindEntry     Kind = "ENTRY"
	KindExit      Kind = "EXIT"
	KindAnomaly   Kind = "ANOMALY"
)

// Event is one auditable engine action. Rejections and anomalies are events,
// never errors: the loop keeps running.
type Event struct {
	Kind Kind
	Time time.Time

	// Signal is set on detections, rejections and entries.
	Signal *parity.Signal

	// Decision is set on rejections and entries.
	Decision *risk.Decision

	// Position is set on entries, exits and anomalies.
	Position *Position

	// Reason carries the human-readable justification: violation text on
	// rejections, exit trigger on exits, description on anomalies.
	Reason string
}

// Sink consumes engine events. Implementations must not block the loop.
type Sink interface {
	Emit(Event)
}

// MultiSink fans one event out to several sinks in order.
type MultiSink []Sink

func (m MultiSink) Emit(ev Event) {
	for _, s := range m {
		s.Emit(ev)
	}
}

// NopSink drops everything.
type NopSink struct{}

func (NopSink) Emit(Event) {}
