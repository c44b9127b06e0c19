package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/iamdhruvsharma3/arbitrage/market"
)

// BrokerConfig is the read-only broker API configuration, loaded from the
// environment so credentials never live in config files.
type BrokerConfig struct {
	Name      string
	APIKey    string
	APISecret string
	BaseURL   string
}

// BrokerConfigFromEnv reads BROKER_* variables, loading a .env file first
// when one exists.
func BrokerConfigFromEnv() (BrokerConfig, error) {
	_ = godotenv.Load() // absent .env is fine; real env still applies

	cfg := BrokerConfig{
		Name:      os.Getenv("BROKER_NAME"),
		APIKey:    os.Getenv("BROKER_API_KEY"),
		APISecret: os.Getenv("BROKER_API_SECRET"),
		BaseURL:   strings.TrimRight(os.Getenv("BROKER_BASE_URL"), "/"),
	}
	if cfg.Name == "" {
		cfg.Name = "GENERIC_BROKER"
	}
	if cfg.APIKey == "" || cfg.APISecret == "" || cfg.BaseURL == "" {
		return BrokerConfig{}, fmt.Errorf(
			"broker configuration missing: set BROKER_API_KEY, BROKER_API_SECRET, BROKER_BASE_URL")
	}
	return cfg, nil
}

// BrokerClient fetches NIFTY quotes from a broker's market-data API. Strictly
// read-only: it never calls order endpoints.
type BrokerClient struct {
	cfg  BrokerConfig
	meta market.InstrumentMeta
	http *http.Client
	now  func() time.Time
}

func NewBrokerClient(cfg BrokerConfig, meta market.InstrumentMeta) *BrokerClient {
	return &BrokerClient{
		cfg:  cfg,
		meta: meta,
		http: &http.Client{Timeout: 5 * time.Second},
		now:  time.Now,
	}
}

type quoteResponse struct {
	Data struct {
		Spot struct {
			LastPrice float64 `json:"last_price"`
		} `json:"NIFTY"`
		Futures struct {
			LastPrice float64 `json:"last_price"`
		} `json:"futures"`
		Options struct {
			Call struct {
				LastPrice float64 `json:"last_price"`
			} `json:"call"`
			Put struct {
				LastPrice float64 `json:"last_price"`
			} `json:"put"`
		} `json:"options"`
	} `json:"data"`
}

// Fetch assembles a snapshot from three quote endpoints: spot, nearest
// futures, and the ATM option pair at the strike derived from spot.
func (c *BrokerClient) Fetch(ctx context.Context) (market.QuoteSnapshot, error) {
	var snap market.QuoteSnapshot

	spot, err := c.get(ctx, "/market/quote", url.Values{"symbol": {c.meta.Name}})
	if err != nil {
		return snap, err
	}
	if spot.Data.Spot.LastPrice <= 0 {
		return snap, fmt.Errorf("%w: spot quote missing", ErrNoData)
	}

	futs, err := c.get(ctx, "/market/futures/quote",
		url.Values{"symbol": {c.meta.Name}, "expiry": {"nearest"}})
	if err != nil {
		return snap, err
	}

	strike := market.ATMStrike(spot.Data.Spot.LastPrice, c.meta.StrikeIncrement)
	opts, err := c.get(ctx, "/market/options/quote", url.Values{
		"symbol": {c.meta.Name},
		"strike": {strconv.Itoa(strike)},
		"expiry": {"nearest"},
	})
	if err != nil {
		return snap, err
	}

	snap = market.QuoteSnapshot{
		Spot:    spot.Data.Spot.LastPrice,
		Futures: futs.Data.Futures.LastPrice,
		Call:    opts.Data.Options.Call.LastPrice,
		Put:     opts.Data.Options.Put.LastPrice,
		Strike:  strike,
		Time:    c.now().UTC(),
		Source:  market.SourceLive(c.cfg.Name),
	}
	return snap, nil
}

func (c *BrokerClient) get(ctx context.Context, endpoint string, params url.Values) (*quoteResponse, error) {
	params.Set("timestamp", strconv.FormatInt(time.Now().UnixMilli(), 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.cfg.BaseURL+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "arbbot/1.0 (read-only)")
	req.Header.Set("X-API-KEY", c.cfg.APIKey)
	req.Header.Set("X-API-SECRET", c.cfg.APISecret)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("broker %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("broker %s: status %s", endpoint, resp.Status)
	}

	var out quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("broker %s: decode: %w", endpoint, err)
	}
	return &out, nil
}
