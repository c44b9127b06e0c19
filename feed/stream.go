package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/iamdhruvsharma3/arbitrage/market"
)

// Stream consumes a broker websocket ticker and keeps a SnapshotStore
// current. The decision loop reads the store through a StoreProvider; the
// stream is the only writer.
type Stream struct {
	url    string
	source market.Provenance
	store  *market.SnapshotStore
	log    *logrus.Logger

	reconnectDelay time.Duration
}

// streamMessage is one websocket frame. Heartbeats carry no prices and are
// skipped.
type streamMessage struct {
	Type    string    `json:"type"` // "tick" or "heartbeat"
	Spot    float64   `json:"spot"`
	Futures float64   `json:"futures"`
	Call    float64   `json:"call"`
	Put     float64   `json:"put"`
	Strike  int       `json:"strike"`
	Time    time.Time `json:"time"`
}

func NewStream(url string, source market.Provenance, store *market.SnapshotStore, log *logrus.Logger) *Stream {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Stream{
		url:            url,
		source:         source,
		store:          store,
		log:            log,
		reconnectDelay: 5 * time.Second,
	}
}

// Run reads ticks until ctx is cancelled, reconnecting on read failures.
func (s *Stream) Run(ctx context.Context) error {
	for {
		if err := s.readOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.log.WithError(err).WithField("url", s.url).Warn("ticker stream dropped, reconnecting")
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.reconnectDelay):
		}
	}
}

func (s *Stream) readOnce(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", s.url, err)
	}
	defer conn.Close()

	// Unblock ReadJSON when the context goes away.
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	s.log.WithField("url", s.url).Info("ticker stream connected")

	for {
		var msg streamMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return fmt.Errorf("read tick: %w", err)
		}
		if msg.Type == "heartbeat" {
			continue
		}

		snap := market.QuoteSnapshot{
			Spot:    msg.Spot,
			Futures: msg.Futures,
			Call:    msg.Call,
			Put:     msg.Put,
			Strike:  msg.Strike,
			Time:    msg.Time,
			Source:  s.source,
		}
		if snap.Time.IsZero() {
			snap.Time = time.Now().UTC()
		}
		s.store.Set(snap)
	}
}
