// Package httpapi serves resolved repository configuration over HTTP.
//
// Routes:
//
//	GET /v1/repos/{owner}/{name}/config   resolution report (JSON), or ?format=yaml|toml|json for the config alone
//	GET /healthz                          liveness
//	GET /metrics                          Prometheus metrics, when a metrics handler is set
//
// Resolution is total, so a repository without a usable configuration still
// answers 200 with outcome "fallback" and the reason.
package httpapi
