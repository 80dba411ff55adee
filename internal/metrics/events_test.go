package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/WagerBot_Go/internal/event"
)

func TestEventMetricsCollector_ResultResolved(t *testing.T) {
	bus := event.NewMemoryBus()
	NewEventMetricsCollector().Register(bus)

	resolvedBefore := testutil.ToFloat64(ResultsResolved.WithLabelValues("metrics-test"))
	awardedBefore := testutil.ToFloat64(ScoresAwarded)
	scoredBefore := testutil.ToFloat64(WagersScored)

	err := bus.Publish(context.Background(), event.NewResultResolvedEvent("metrics-test", "2024-01-01", 50, 3, 175))
	require.NoError(t, err)

	assert.Equal(t, resolvedBefore+1, testutil.ToFloat64(ResultsResolved.WithLabelValues("metrics-test")))
	assert.Equal(t, awardedBefore+175, testutil.ToFloat64(ScoresAwarded))
	assert.Equal(t, scoredBefore+3, testutil.ToFloat64(WagersScored))
}

func TestEventMetricsCollector_CountsEveryType(t *testing.T) {
	before := testutil.ToFloat64(EventsPublished.WithLabelValues(string(event.WagerConfirmed)))

	err := NewEventMetricsCollector().HandleEvent(context.Background(),
		event.NewWagerConfirmedEvent("dave", "nt", "2024-01-01", 4, nil))

	require.NoError(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(EventsPublished.WithLabelValues(string(event.WagerConfirmed))))
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/things/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/things/{id}", "418"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/things/42?x=1", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/things/{id}", "418")))
}
