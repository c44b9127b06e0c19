package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(trade_id, entry_time, exit_time, strike, size, lot_size,
		 call_qty, put_qty, futures_qty,
		 entry_call, entry_put, entry_futures,
		 exit_call, exit_put, exit_futures,
		 entry_gap, exit_gap, expected_profit, entry_cost, realized_pl,
		 exit_reason, mode)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.TradeID, t.EntryTime, t.ExitTime, t.Strike, t.Size, t.LotSize,
		t.CallQty, t.PutQty, t.FuturesQty,
		t.EntryCall, t.EntryPut, t.EntryFutures,
		t.ExitCall, t.ExitPut, t.ExitFutures,
		t.EntryGap, t.ExitGap, t.ExpectedProfit, t.EntryCost, t.RealizedPL,
		t.ExitReason, t.Mode,
	)
	return err
}

func (j *SQLite) RecordSession(s SessionSnapshot) error {
	enabled := 0
	if s.TradingEnabled {
		enabled = 1
	}
	_, err := j.db.Exec(`
		INSERT INTO sessions
		(time, total_pl, daily_trade_count, trading_enabled, closed_trades)
		VALUES (?, ?, ?, ?, ?)`,
		s.Time, s.TotalPL, s.DailyTradeCount, enabled, s.ClosedTrades,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
