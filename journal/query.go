package journal

import (
	"database/sql"
	"fmt"
	"time"
)

const tradeColumns = `trade_id, entry_time, exit_time, strike, size, lot_size,
	call_qty, put_qty, futures_qty,
	entry_call, entry_put, entry_futures,
	exit_call, exit_put, exit_futures,
	entry_gap, exit_gap, expected_profit, entry_cost, realized_pl,
	exit_reason, mode`

func scanTrade(scan func(dest ...any) error) (TradeRecord, error) {
	var rec TradeRecord
	err := scan(
		&rec.TradeID, &rec.EntryTime, &rec.ExitTime, &rec.Strike, &rec.Size, &rec.LotSize,
		&rec.CallQty, &rec.PutQty, &rec.FuturesQty,
		&rec.EntryCall, &rec.EntryPut, &rec.EntryFutures,
		&rec.ExitCall, &rec.ExitPut, &rec.ExitFutures,
		&rec.EntryGap, &rec.ExitGap, &rec.ExpectedProfit, &rec.EntryCost, &rec.RealizedPL,
		&rec.ExitReason, &rec.Mode,
	)
	return rec, err
}

// GetTrade returns a single trade record by ID.
func (j *SQLite) GetTrade(tradeID string) (TradeRecord, error) {
	row := j.db.QueryRow(`SELECT `+tradeColumns+` FROM trades WHERE trade_id = ?`, tradeID)

	rec, err := scanTrade(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return TradeRecord{}, fmt.Errorf("trade %q not found", tradeID)
		}
		return TradeRecord{}, err
	}
	return rec, nil
}

// ListTradesClosedBetween returns trades whose exit_time is within [start, end).
func (j *SQLite) ListTradesClosedBetween(start, end time.Time) ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT `+tradeColumns+`
		FROM trades
		WHERE exit_time >= ? AND exit_time < ?
		ORDER BY exit_time ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		rec, err := scanTrade(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListTradesClosedOn returns trades closed on the given calendar day (UTC).
func (j *SQLite) ListTradesClosedOn(day time.Time) ([]TradeRecord, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return j.ListTradesClosedBetween(start, start.AddDate(0, 0, 1))
}

// Summary aggregates realized results over a set of trade records.
type Summary struct {
	Trades      int
	Wins        int
	Losses      int
	NetPL       float64
	GrossProfit float64
	GrossLoss   float64
}

func Summarize(recs []TradeRecord) Summary {
	var s Summary
	s.Trades = len(recs)
	for _, r := range recs {
		s.NetPL += r.RealizedPL
		if r.RealizedPL >= 0 {
			s.Wins++
			s.GrossProfit += r.RealizedPL
		} else {
			s.Losses++
			s.GrossLoss += -r.RealizedPL
		}
	}
	return s
}
