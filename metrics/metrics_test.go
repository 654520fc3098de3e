package metrics_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/0xalexb/bluecommit/config"
	"github.com/0xalexb/bluecommit/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_ObserveResolution(t *testing.T) {
	t.Parallel()

	recorder := metrics.NewRecorder()

	recorder.ObserveResolution(config.OutcomeResolved, "")
	recorder.ObserveResolution(config.OutcomeResolved, "")
	recorder.ObserveResolution(config.OutcomeFallback, "not_found")

	count, err := testutil.GatherAndCount(recorder.Registry(), "bluecommit_resolutions_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "one series per outcome and reason")
}

func TestRecorder_ObserveFetch(t *testing.T) {
	t.Parallel()

	recorder := metrics.NewRecorder()

	recorder.ObserveFetch(20*time.Millisecond, nil)
	recorder.ObserveFetch(time.Second, errors.New("boom"))

	count, err := testutil.GatherAndCount(recorder.Registry(), "bluecommit_fetch_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestRecorder_WithResolver(t *testing.T) {
	t.Parallel()

	recorder := metrics.NewRecorder()
	resolver := config.NewResolver(
		config.FetcherFunc(func(_ context.Context, repo config.Repository, _ string) ([]byte, error) {
			if repo.Name == "missing" {
				return nil, config.ErrNotFound
			}

			return []byte("stats.enable=banana"), nil
		}),
		config.WithObserver(recorder),
	)

	resolver.Resolve(context.Background(), "octo/hello")
	resolver.Resolve(context.Background(), "octo/missing")
	resolver.Resolve(context.Background(), "bogus")

	server := httptest.NewServer(recorder.Handler())
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL) //nolint:noctx // test server
	require.NoError(t, err)

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, text, `bluecommit_resolutions_total{outcome="resolved",reason=""} 1`)
	assert.Contains(t, text, `bluecommit_resolutions_total{outcome="fallback",reason="not_found"} 1`)
	assert.Contains(t, text, `bluecommit_resolutions_total{outcome="fallback",reason="repository"} 1`)
	assert.Contains(t, text, `bluecommit_field_fallbacks_total{field="stats.enable"} 1`)
	assert.Contains(t, text, `bluecommit_fetch_duration_seconds_count{result="ok"} 1`)
	assert.Contains(t, text, `bluecommit_fetch_duration_seconds_count{result="error"} 1`)
	assert.Contains(t, text, "go_goroutines")
}

func TestNewRecorder_Independent(t *testing.T) {
	t.Parallel()

	first := metrics.NewRecorder()
	second := metrics.NewRecorder()

	first.ObserveFieldFallback(config.FieldStatsEnable)
	first.ObserveFieldFallback(config.FieldStatsEnable)

	families, err := first.Registry().Gather()
	require.NoError(t, err)

	var value float64

	for _, family := range families {
		if family.GetName() == "bluecommit_field_fallbacks_total" {
			value = family.GetMetric()[0].GetCounter().GetValue()
		}
	}

	assert.InDelta(t, 2, value, 0)

	count, err := testutil.GatherAndCount(second.Registry(), "bluecommit_field_fallbacks_total")
	require.NoError(t, err)
	assert.Zero(t, count)
}
