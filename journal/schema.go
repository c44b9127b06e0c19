// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	entry_time DATETIME NOT NULL,
	exit_time DATETIME NOT NULL,
	strike INTEGER NOT NULL,
	size INTEGER NOT NULL,
	lot_size INTEGER NOT NULL,
	call_qty INTEGER NOT NULL,
	put_qty INTEGER NOT NULL,
	futures_qty INTEGER NOT NULL,
	entry_call REAL NOT NULL,
	entry_put REAL NOT NULL,
	entry_futures REAL NOT NULL,
	exit_call REAL NOT NULL,
	exit_put REAL NOT NULL,
	exit_futures REAL NOT NULL,
	entry_gap REAL NOT NULL,
	exit_gap REAL NOT NULL,
	expected_profit REAL NOT NULL,
	entry_cost REAL NOT NULL,
	realized_pl REAL NOT NULL,
	exit_reason TEXT NOT NULL,
	mode TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
	time DATETIME NOT NULL,
	total_pl REAL NOT NULL,
	daily_trade_count INTEGER NOT NULL,
	trading_enabled INTEGER NOT NULL,
	closed_trades INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_exit_time ON trades(exit_time);
CREATE INDEX IF NOT EXISTS idx_sessions_time ON sessions(time);
`
