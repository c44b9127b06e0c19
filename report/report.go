// Package report renders engine events as structured log lines. It is the
// human-facing audit trail; machine consumers use the metrics sink or the
// journal instead.
package report

import (
	"github.com/sirupsen/logrus"

	"github.com/iamdhruvsharma3/arbitrage/engine"
)

// Logger is an engine.Sink backed by logrus.
type Logger struct {
	log *logrus.Logger
}

func NewLogger(log *logrus.Logger) *Logger {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Logger{log: log}
}

func (l *Logger) Emit(ev engine.Event) {
	entry := l.log.WithField("event", string(ev.Kind)).WithField("time", ev.Time)

	switch ev.Kind {
	case engine.KindDetection:
		entry.WithFields(logrus.Fields{
			"parity_gap": ev.Signal.ParityGap,
			"expensive":  string(ev.Signal.Expensive),
			"call":       ev.Signal.Call,
			"put":        ev.Signal.Put,
			"futures":    ev.Signal.Futures,
			"strike":     ev.Signal.Strike,
		}).Info("mispricing detected")

	case engine.KindRejection:
		entry.WithField("reason", ev.Reason).Info("entry rejected")

	case engine.KindEntry:
		entry.WithFields(logrus.Fields{
			"trade_id":        ev.Position.ID,
			"size":            ev.Position.Size,
			"call_qty":        ev.Position.CallQty,
			"put_qty":         ev.Position.PutQty,
			"entry_gap":       ev.Position.EntryGap,
			"expected_profit": ev.Position.ExpectedProfit,
			"entry_cost":      ev.Position.EntryCost,
		}).Info("position opened")

	case engine.KindExit:
		entry.WithFields(logrus.Fields{
			"trade_id":    ev.Position.ID,
			"reason":      ev.Reason,
			"exit_gap":    ev.Position.ExitGap,
			"realized_pl": ev.Position.RealizedPL,
			"held":        ev.Position.ExitTime.Sub(ev.Position.EntryTime).String(),
			"mode":        string(ev.Position.Mode),
		}).Info("position closed")

	case engine.KindAnomaly:
		entry.WithFields(logrus.Fields{
			"trade_id":    ev.Position.ID,
			"realized_pl": ev.Position.RealizedPL,
		}).Warn(ev.Reason)

	default:
		entry.WithField("reason", ev.Reason).Info("engine event")
	}
}
