package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/iamdhruvsharma3/arbitrage/market"
)

func brokerTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/market/quote", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-API-KEY"))
		assert.Equal(t, "test-secret", r.Header.Get("X-API-SECRET"))
		assert.Equal(t, "NIFTY", r.URL.Query().Get("symbol"))
		assert.NotEmpty(t, r.URL.Query().Get("timestamp"))
		fmt.Fprint(w, `{"data":{"NIFTY":{"last_price":22012.5}}}`)
	})
	mux.HandleFunc("/market/futures/quote", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "nearest", r.URL.Query().Get("expiry"))
		fmt.Fprint(w, `{"data":{"futures":{"last_price":22020}}}`)
	})
	mux.HandleFunc("/market/options/quote", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "22000", r.URL.Query().Get("strike"))
		fmt.Fprint(w, `{"data":{"options":{"call":{"last_price":150},"put":{"last_price":80}}}}`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testBrokerClient(srv *httptest.Server) *BrokerClient {
	c := NewBrokerClient(BrokerConfig{
		Name:      "zerodha",
		APIKey:    "test-key",
		APISecret: "test-secret",
		BaseURL:   srv.URL,
	}, market.Instruments["NIFTY"])
	c.now = func() time.Time { return qt0 }
	return c
}

func TestBrokerClientFetch(t *testing.T) {
	t.Parallel()

	c := testBrokerClient(brokerTestServer(t))

	snap, err := c.Fetch(context.Background())
	assert.NoError(t, err)

	assert.InDelta(t, 22012.5, snap.Spot, 1e-9)
	assert.InDelta(t, 22020, snap.Futures, 1e-9)
	assert.InDelta(t, 150, snap.Call, 1e-9)
	assert.InDelta(t, 80, snap.Put, 1e-9)
	assert.Equal(t, 22000, snap.Strike) // ATM for spot 22012.5
	assert.Equal(t, market.SourceLive("zerodha"), snap.Source)
	assert.True(t, snap.Time.Equal(qt0))
}

func TestBrokerClientMissingSpot(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{}}`)
	}))
	t.Cleanup(srv.Close)

	_, err := testBrokerClient(srv).Fetch(context.Background())
	assert.ErrorIs(t, err, ErrNoData)
}

func TestBrokerClientHTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)

	_, err := testBrokerClient(srv).Fetch(context.Background())
	assert.ErrorContains(t, err, "403")
}

func TestBrokerConfigFromEnv(t *testing.T) {
	t.Setenv("BROKER_NAME", "upstox")
	t.Setenv("BROKER_API_KEY", "k")
	t.Setenv("BROKER_API_SECRET", "s")
	t.Setenv("BROKER_BASE_URL", "https://api.example.com/")

	cfg, err := BrokerConfigFromEnv()
	assert.NoError(t, err)
	assert.Equal(t, "upstox", cfg.Name)
	assert.Equal(t, "https://api.example.com", cfg.BaseURL)
}

func TestBrokerConfigFromEnvMissing(t *testing.T) {
	t.Setenv("BROKER_NAME", "")
	t.Setenv("BROKER_API_KEY", "")
	t.Setenv("BROKER_API_SECRET", "")
	t.Setenv("BROKER_BASE_URL", "")

	_, err := BrokerConfigFromEnv()
	assert.ErrorContains(t, err, "BROKER_API_KEY")
}
