package engine

import "time"

// Session is the mutable state of one trading run. It is owned by a single
// Engine and never shared; a fresh run (or test) constructs a fresh Session.
type Session struct {
	tradingEnabled  bool
	dailyTradeCount int
	lastResetDate   time.Time // midnight UTC of the counting day

	totalPL float64
	history []*Position
	open    *Position
}

func NewSession() *Session {
	return &Session{tradingEnabled: true}
}

// TradingEnabled reports whether new entries are admitted. It flips to false
// permanently (for this run) when a losing trade settles under a
// disable-after-loss policy.
func (s *Session) TradingEnabled() bool { return s.tradingEnabled }

func (s *Session) OpenPositions() int {
	if s.open != nil {
		return 1
	}
	return 0
}

func (s *Session) DailyTradeCount() int { return s.dailyTradeCount }

func (s *Session) TotalPL() float64 { return s.totalPL }

// History returns every position this run has opened, in entry order,
// including the currently open one.
func (s *Session) History() []*Position { return s.history }

func (s *Session) ClosedTrades() int {
	n := len(s.history)
	if s.open != nil {
		n--
	}
	return n
}

// Open returns the open position, or nil.
func (s *Session) Open() *Position { return s.open }

// resetDailyIfNeeded zeroes the daily trade counter when the calendar day
// (UTC) of now differs from the day the counter was last reset.
func (s *Session) resetDailyIfNeeded(now time.Time) bool {
	day := now.UTC().Truncate(24 * time.Hour)
	if day.Equal(s.lastResetDate) {
		return false
	}
	first := s.lastResetDate.IsZero()
	s.lastResetDate = day
	if first {
		return false
	}
	s.dailyTradeCount = 0
	return true
}

// admit installs p as the open position and consumes one daily trade slot.
// Called only after the risk gate and entry-cost checks have passed.
func (s *Session) admit(p *Position) {
	if s.open != nil {
		panic("session: admit with a position already open")
	}
	s.open = p
	s.history = append(s.history, p)
	s.dailyTradeCount++
}

// close folds the settled position into the running total and frees the
// open slot. disableOnLoss applies the kill switch on a negative result.
func (s *Session) close(p *Position, disableOnLoss bool) {
	if s.open != p {
		panic("session: closing a position that is not open")
	}
	s.totalPL += p.RealizedPL
	s.open = nil
	if disableOnLoss && p.RealizedPL < 0 {
		s.tradingEnabled = false
	}
}
