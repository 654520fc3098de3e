package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/0xalexb/bluecommit/config"
	"github.com/0xalexb/bluecommit/listener/middleware"
)

// DefaultRequestTimeout bounds one API request.
const DefaultRequestTimeout = 20 * time.Second

// Resolver resolves a repository identifier into a configuration.
type Resolver interface {
	Resolve(ctx context.Context, repository string) config.Result
}

// Options configures the handler.
type Options struct {
	// Metrics is mounted on /metrics when set.
	Metrics http.Handler
	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// RequestTimeout defaults to DefaultRequestTimeout.
	RequestTimeout time.Duration
}

type errorBody struct {
	Error string `json:"error"`
}

// NewHandler builds the API handler wrapped in request ID, logging,
// recovery and timeout middleware.
func NewHandler(resolver Resolver, opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	api := &api{resolver: resolver, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/repos/{owner}/{name}/config", api.config)
	mux.HandleFunc("GET /healthz", api.health)

	if opts.Metrics != nil {
		mux.Handle("GET /metrics", opts.Metrics)
	}

	return middleware.Chain(mux,
		middleware.RequestID(),
		middleware.Logging(logger),
		middleware.Recovery(logger),
		middleware.Timeout(timeout),
	)
}

type api struct {
	resolver Resolver
	logger   *slog.Logger
}

func (a *api) config(w http.ResponseWriter, r *http.Request) {
	repository := r.PathValue("owner") + "/" + r.PathValue("name")

	format := config.FormatJSON
	raw := r.URL.Query().Has("format")

	if raw {
		parsed, err := config.ParseFormat(r.URL.Query().Get("format"))
		if err != nil {
			a.writeJSON(w, r, http.StatusBadRequest, errorBody{Error: err.Error()})

			return
		}

		format = parsed
	}

	result := a.resolver.Resolve(r.Context(), repository)

	if !raw {
		a.writeJSON(w, r, http.StatusOK, config.NewReport(result))

		return
	}

	body, err := config.Marshal(result.Config, format)
	if err != nil {
		a.writeJSON(w, r, http.StatusInternalServerError, errorBody{Error: err.Error()})

		return
	}

	w.Header().Set("Content-Type", contentType(format))
	w.Header().Set("X-Bluecommit-Outcome", string(result.Outcome))
	w.WriteHeader(http.StatusOK)

	_, _ = w.Write(body)
}

func (a *api) health(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *api) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		a.logger.WarnContext(r.Context(), "writing response failed",
			slog.String("path", r.URL.Path), slog.Any("error", err))
	}
}

func contentType(format config.Format) string {
	switch format {
	case config.FormatYAML:
		return "application/yaml"
	case config.FormatTOML:
		return "application/toml"
	default:
		return "application/json"
	}
}
