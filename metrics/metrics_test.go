package metrics

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/iamdhruvsharma3/arbitrage/engine"
	"github.com/iamdhruvsharma3/arbitrage/parity"
)

func TestSinkCountsEvents(t *testing.T) {
	t.Parallel()

	s := NewSink()
	now := time.Now()

	sig := &parity.Signal{ParityGap: 60}
	s.Emit(engine.Event{Kind: engine.KindDetection, Time: now, Signal: sig})
	s.Emit(engine.Event{Kind: engine.KindRejection, Time: now, Signal: sig})
	s.Emit(engine.Event{Kind: engine.KindDetection, Time: now, Signal: &parity.Signal{ParityGap: 25}})
	s.Emit(engine.Event{Kind: engine.KindEntry, Time: now, Signal: sig, Position: &engine.Position{}})
	s.Emit(engine.Event{Kind: engine.KindExit, Time: now, Position: &engine.Position{RealizedPL: 2870}})
	s.Emit(engine.Event{Kind: engine.KindExit, Time: now, Position: &engine.Position{RealizedPL: -30}})
	s.Emit(engine.Event{Kind: engine.KindAnomaly, Time: now, Position: &engine.Position{}})

	assert.InDelta(t, 2, testutil.ToFloat64(s.detections), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(s.rejections), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(s.entries), 1e-9)
	assert.InDelta(t, 2, testutil.ToFloat64(s.exits), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(s.anomalies), 1e-9)

	assert.InDelta(t, 25, testutil.ToFloat64(s.parityGap), 1e-9)
	assert.InDelta(t, -30, testutil.ToFloat64(s.realizedPL), 1e-9)
	assert.InDelta(t, 2840, testutil.ToFloat64(s.totalPL), 1e-9)
}

func TestSinkHandlerServesExposition(t *testing.T) {
	t.Parallel()

	s := NewSink()
	s.Emit(engine.Event{Kind: engine.KindDetection, Signal: &parity.Signal{ParityGap: 60}})

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "arbbot_detections_total 1")
	assert.Contains(t, rec.Body.String(), "arbbot_parity_gap 60")
}
