package journal

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	j, err := NewSQLite(path)
	assert.NoError(t, err)

	return j, path
}

func sampleTrade(id string, exit time.Time, pl float64) TradeRecord {
	return TradeRecord{
		TradeID:        id,
		EntryTime:      exit.Add(-2 * time.Minute),
		ExitTime:       exit,
		Strike:         22000,
		Size:           1,
		LotSize:        50,
		CallQty:        -1,
		PutQty:         1,
		FuturesQty:     0,
		EntryCall:      150,
		EntryPut:       80,
		EntryFutures:   22010,
		ExitCall:       120,
		ExitPut:        108,
		ExitFutures:    22005,
		EntryGap:       60,
		ExitGap:        7,
		ExpectedProfit: 2250,
		EntryCost:      3485,
		RealizedPL:     pl,
		ExitReason:     "parity restored: gap 7.00 < 10.00",
		Mode:           "full",
	}
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	assert.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('trades','sessions')`)
	assert.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		assert.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	assert.NoError(t, rows.Err())

	assert.True(t, found["trades"])
	assert.True(t, found["sessions"])
}

func TestSQLiteTradeRoundTrip(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	exit := time.Date(2025, 12, 1, 10, 5, 0, 0, time.UTC)
	rec := sampleTrade("01TRADE", exit, 990)
	assert.NoError(t, j.RecordTrade(rec))

	got, err := j.GetTrade("01TRADE")
	assert.NoError(t, err)
	assert.Equal(t, rec.TradeID, got.TradeID)
	assert.Equal(t, rec.Strike, got.Strike)
	assert.Equal(t, rec.CallQty, got.CallQty)
	assert.Equal(t, rec.PutQty, got.PutQty)
	assert.Equal(t, 0, got.FuturesQty)
	assert.InDelta(t, rec.RealizedPL, got.RealizedPL, 1e-9)
	assert.InDelta(t, rec.EntryGap, got.EntryGap, 1e-9)
	assert.Equal(t, rec.ExitReason, got.ExitReason)
	assert.Equal(t, "full", got.Mode)
	assert.True(t, got.ExitTime.Equal(exit))
}

func TestSQLiteGetTradeMissing(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	_, err := j.GetTrade("NOPE")
	assert.ErrorContains(t, err, "not found")
}

func TestSQLiteListTradesClosedOn(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	day1 := time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 12, 2, 11, 0, 0, 0, time.UTC)

	assert.NoError(t, j.RecordTrade(sampleTrade("01A", day1, 500)))
	assert.NoError(t, j.RecordTrade(sampleTrade("01B", day1.Add(time.Hour), -120)))
	assert.NoError(t, j.RecordTrade(sampleTrade("01C", day2, 300)))

	recs, err := j.ListTradesClosedOn(day1)
	assert.NoError(t, err)
	assert.Len(t, recs, 2)
	assert.Equal(t, "01A", recs[0].TradeID)
	assert.Equal(t, "01B", recs[1].TradeID)

	s := Summarize(recs)
	assert.Equal(t, 2, s.Trades)
	assert.Equal(t, 1, s.Wins)
	assert.Equal(t, 1, s.Losses)
	assert.InDelta(t, 380, s.NetPL, 1e-9)
	assert.InDelta(t, 500, s.GrossProfit, 1e-9)
	assert.InDelta(t, 120, s.GrossLoss, 1e-9)
}

func TestSQLiteRecordSession(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)

	assert.NoError(t, j.RecordSession(SessionSnapshot{
		Time:            time.Date(2025, 12, 1, 15, 30, 0, 0, time.UTC),
		TotalPL:         -42.5,
		DailyTradeCount: 2,
		TradingEnabled:  false,
		ClosedTrades:    2,
	}))
	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	assert.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var (
		totalPL float64
		daily   int
		enabled int
		closed  int
	)
	err = db.QueryRow(`SELECT total_pl, daily_trade_count, trading_enabled, closed_trades FROM sessions LIMIT 1`).
		Scan(&totalPL, &daily, &enabled, &closed)
	assert.NoError(t, err)
	assert.InDelta(t, -42.5, totalPL, 1e-9)
	assert.Equal(t, 2, daily)
	assert.Equal(t, 0, enabled)
	assert.Equal(t, 2, closed)
}
