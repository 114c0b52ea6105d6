package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordSettlement(t *testing.T) {
	m := NewMetrics()

	m.RecordSettlement("pool", 3, 90, 20*time.Millisecond)
	m.RecordSettlement("pool", 0, 0, time.Millisecond)
	m.RecordSettlement("points", 2, 0, time.Millisecond)
	m.RecordSettlementFailure(time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.settlementRuns.WithLabelValues(ResultNoop)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.settlementRuns.WithLabelValues(ResultSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.settlementRuns.WithLabelValues(ResultError)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.predictionsSettled.WithLabelValues("pool")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.predictionsSettled.WithLabelValues("points")))
	assert.Equal(t, 90.0, testutil.ToFloat64(m.payoutAmount))
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	m.RecordStandingsRecomputed()
	m.RecordEventPublished("match_settled")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "liga_standings_recomputed_total 1"))
	assert.True(t, strings.Contains(body, `liga_events_published_total{event_type="match_settled"} 1`))
}

func TestSetupTracing(t *testing.T) {
	shutdown, err := SetupTracing(context.Background(), "")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))

	_, err = SetupTracing(context.Background(), "jaeger")
	assert.Error(t, err)
}
