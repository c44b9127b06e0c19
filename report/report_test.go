package report

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"

	"github.com/iamdhruvsharma3/arbitrage/engine"
	"github.com/iamdhruvsharma3/arbitrage/market"
	"github.com/iamdhruvsharma3/arbitrage/parity"
)

func TestLoggerRendersEvents(t *testing.T) {
	t.Parallel()

	log, hook := test.NewNullLogger()
	l := NewLogger(log)
	now := time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC)

	sig := &parity.Signal{
		ParityGap: 60,
		Expensive: market.Call,
		Cheap:     market.Put,
		Call:      150,
		Put:       80,
		Futures:   22010,
		Strike:    22000,
	}
	pos := &engine.Position{
		ID:             "01TEST",
		EntryTime:      now,
		Size:           1,
		CallQty:        -1,
		PutQty:         1,
		EntryGap:       60,
		ExpectedProfit: 2250,
		ExitTime:       now.Add(time.Minute),
		ExitGap:        7,
		RealizedPL:     2870,
		Mode:           engine.SettleFull,
	}

	l.Emit(engine.Event{Kind: engine.KindDetection, Time: now, Signal: sig})
	l.Emit(engine.Event{Kind: engine.KindRejection, Time: now, Signal: sig, Reason: "DAILY_LIMIT: daily trades 3 >= max 3"})
	l.Emit(engine.Event{Kind: engine.KindEntry, Time: now, Signal: sig, Position: pos})
	l.Emit(engine.Event{Kind: engine.KindExit, Time: now.Add(time.Minute), Position: pos, Reason: "parity restored"})
	l.Emit(engine.Event{Kind: engine.KindAnomaly, Time: now.Add(time.Minute), Position: pos, Reason: "realized below expectations"})

	entries := hook.AllEntries()
	assert.Len(t, entries, 5)

	assert.Equal(t, "mispricing detected", entries[0].Message)
	assert.Equal(t, "DETECTION", entries[0].Data["event"])
	assert.Equal(t, 60.0, entries[0].Data["parity_gap"])
	assert.Equal(t, "CALL", entries[0].Data["expensive"])

	assert.Equal(t, "entry rejected", entries[1].Message)
	assert.Contains(t, entries[1].Data["reason"], "DAILY_LIMIT")

	assert.Equal(t, "position opened", entries[2].Message)
	assert.Equal(t, "01TEST", entries[2].Data["trade_id"])
	assert.Equal(t, -1, entries[2].Data["call_qty"])

	assert.Equal(t, "position closed", entries[3].Message)
	assert.Equal(t, 2870.0, entries[3].Data["realized_pl"])
	assert.Equal(t, "1m0s", entries[3].Data["held"])

	assert.Equal(t, logrus.WarnLevel, entries[4].Level)
	assert.Equal(t, "realized below expectations", entries[4].Message)
}
