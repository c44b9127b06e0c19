package risk

// Policy holds the risk limits and account parameters the gate enforces.
// It is read once at startup and treated as immutable for the run.
type Policy struct {
	StartingCapital    float64 // simulated capital, e.g. 10000
	CapitalPerTradePct float64 // fraction of capital per trade, e.g. 0.10

	// Exposure limits
	MaxOpenPositions int // fixed at 1 for this strategy
	MaxTradesPerDay  int // e.g. 3
	MaxPositionSize  int // hard contract cap regardless of sizing math

	// Circuit breakers
	MaxMarginUsage   float64 // e.g. 0.80
	DisableAfterLoss bool

	// Trade economics
	CostPerLeg float64 // fixed transaction cost per leg
	MinProfit  float64 // minimum profit threshold for detection
	LotSize    int     // contract multiplier, 50 for NIFTY
}

// CapitalPerTrade is the capital budget a single trade may consume.
func (p Policy) CapitalPerTrade() float64 {
	return p.StartingCapital * p.CapitalPerTradePct
}
