package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

type CSV struct {
	trades   *csv.Writer
	sessions *csv.Writer
	tf, sf   *os.File
}

func NewCSV(tradesPath, sessionsPath string) (*CSV, error) {
	tf, err := os.Create(tradesPath)
	if err != nil {
		return nil, err
	}
	sf, err := os.Create(sessionsPath)
	if err != nil {
		tf.Close()
		return nil, err
	}

	tw := csv.NewWriter(tf)
	sw := csv.NewWriter(sf)

	if err := tw.Write([]string{
		"trade_id", "entry_time", "exit_time", "strike", "size", "lot_size",
		"call_qty", "put_qty", "futures_qty",
		"entry_call", "entry_put", "entry_futures",
		"exit_call", "exit_put", "exit_futures",
		"entry_gap", "exit_gap", "expected_profit", "entry_cost", "realized_pl",
		"exit_reason", "mode",
	}); err != nil {
		return nil, err
	}
	if err := sw.Write([]string{
		"time", "total_pl", "daily_trade_count", "trading_enabled", "closed_trades",
	}); err != nil {
		return nil, err
	}

	tw.Flush()
	if err := tw.Error(); err != nil {
		return nil, err
	}
	sw.Flush()
	if err := sw.Error(); err != nil {
		return nil, err
	}

	return &CSV{trades: tw, sessions: sw, tf: tf, sf: sf}, nil
}

func (j *CSV) RecordTrade(t TradeRecord) error {
	err := j.trades.Write([]string{
		t.TradeID,
		t.EntryTime.Format(time.RFC3339),
		t.ExitTime.Format(time.RFC3339),
		strconv.Itoa(t.Strike),
		strconv.Itoa(t.Size),
		strconv.Itoa(t.LotSize),
		strconv.Itoa(t.CallQty),
		strconv.Itoa(t.PutQty),
		strconv.Itoa(t.FuturesQty),
		f(t.EntryCall), f(t.EntryPut), f(t.EntryFutures),
		f(t.ExitCall), f(t.ExitPut), f(t.ExitFutures),
		f(t.EntryGap), f(t.ExitGap), f(t.ExpectedProfit), f(t.EntryCost), f(t.RealizedPL),
		t.ExitReason,
		t.Mode,
	})
	if err != nil {
		return err
	}
	j.trades.Flush()
	return j.trades.Error()
}

func (j *CSV) RecordSession(s SessionSnapshot) error {
	err := j.sessions.Write([]string{
		s.Time.Format(time.RFC3339),
		f(s.TotalPL),
		strconv.Itoa(s.DailyTradeCount),
		strconv.FormatBool(s.TradingEnabled),
		strconv.Itoa(s.ClosedTrades),
	})
	if err != nil {
		return err
	}
	j.sessions.Flush()
	return j.sessions.Error()
}

func (j *CSV) Close() error {
	j.trades.Flush()
	if err := j.trades.Error(); err != nil {
		return err
	}
	j.sessions.Flush()
	if err := j.sessions.Error(); err != nil {
		return err
	}

	if err := j.tf.Close(); err != nil {
		return err
	}
	return j.sf.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}
