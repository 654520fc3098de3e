// Package metrics records configuration resolution metrics with Prometheus.
//
// A Recorder owns its registry, so several can coexist in one process (and
// in parallel tests). It implements config.Observer and is passed to the
// resolver with config.WithObserver. Handler exposes the registry in the
// Prometheus text format.
//
// Exported series:
//   - bluecommit_resolutions_total{outcome,reason}
//   - bluecommit_fetch_duration_seconds{result}
//   - bluecommit_field_fallbacks_total{field}
package metrics
