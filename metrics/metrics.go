package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/0xalexb/bluecommit/config"
)

const namespace = "bluecommit"

// Fetch results used as the result label.
const (
	fetchOK    = "ok"
	fetchError = "error"
)

// Recorder collects resolution metrics on a private registry.
type Recorder struct {
	registry    *prometheus.Registry
	resolutions *prometheus.CounterVec
	fetches     *prometheus.HistogramVec
	fallbacks   *prometheus.CounterVec
}

var _ config.Observer = (*Recorder)(nil)

// NewRecorder creates a Recorder. Process and Go runtime collectors are
// registered alongside the resolution series.
func NewRecorder() *Recorder {
	recorder := &Recorder{
		registry: prometheus.NewRegistry(),
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolutions_total",
			Help:      "Configuration resolutions by outcome and fallback reason.",
		}, []string{"outcome", "reason"}),
		fetches: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Time spent fetching configuration files.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"result"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "field_fallbacks_total",
			Help:      "Fields replaced by their default after a type mismatch.",
		}, []string{"field"}),
	}

	recorder.registry.MustRegister(
		recorder.resolutions,
		recorder.fetches,
		recorder.fallbacks,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return recorder
}

// ObserveFetch records the duration of one fetch.
func (r *Recorder) ObserveFetch(elapsed time.Duration, err error) {
	result := fetchOK
	if err != nil {
		result = fetchError
	}

	r.fetches.WithLabelValues(result).Observe(elapsed.Seconds())
}

// ObserveResolution counts one finished resolution.
func (r *Recorder) ObserveResolution(outcome config.Outcome, reason string) {
	r.resolutions.WithLabelValues(string(outcome), reason).Inc()
}

// ObserveFieldFallback counts one field that fell back to its default.
func (r *Recorder) ObserveFieldFallback(path string) {
	r.fallbacks.WithLabelValues(path).Inc()
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler exposes the registry.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
