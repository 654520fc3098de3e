package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/0xalexb/bluecommit/config/dialect"
	"github.com/0xalexb/bluecommit/config/schema"
	"github.com/0xalexb/bluecommit/config/tree"
)

// Errors recorded in Result.Reason when resolution falls back to defaults.
var (
	// ErrNotFound is wrapped by fetchers when the configuration file does not exist.
	ErrNotFound = errors.New("configuration file not found")

	// ErrFetch wraps every error returned by a Fetcher.
	ErrFetch = errors.New("fetching configuration")

	// ErrParse wraps every error returned by a Parser.
	ErrParse = errors.New("parsing configuration")

	// ErrValidation wraps schema validation failures.
	ErrValidation = errors.New("validating configuration")

	// ErrPanic is recorded when a pipeline stage panics.
	ErrPanic = errors.New("configuration pipeline panicked")
)

// Fetcher retrieves the raw text of a file in a repository.
type Fetcher interface {
	Fetch(ctx context.Context, repo Repository, path string) ([]byte, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, repo Repository, path string) ([]byte, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, repo Repository, path string) ([]byte, error) {
	return f(ctx, repo, path)
}

// Parser turns raw configuration text into a tree.
type Parser interface {
	Parse(data []byte) (*dialect.Document, error)
}

// Observer receives resolution events, typically to record metrics.
type Observer interface {
	ObserveFetch(elapsed time.Duration, err error)
	ObserveResolution(outcome Outcome, reason string)
	ObserveFieldFallback(path string)
}

// Outcome tells whether a Result came from the repository or from defaults.
type Outcome string

// Outcomes.
const (
	OutcomeResolved Outcome = "resolved"
	OutcomeFallback Outcome = "fallback"
)

// Result is the outcome of one resolution. Config is always fully populated.
type Result struct {
	Repository string
	Config     Config
	Outcome    Outcome
	// Reason is set when Outcome is OutcomeFallback.
	Reason error
	// Diagnostics lists lines the parser skipped.
	Diagnostics []dialect.Diagnostic
	// Fallbacks lists fields replaced by their default.
	Fallbacks []*schema.FieldError
	// Unknown lists keys the schema does not declare.
	Unknown []string
}

// ReasonLabel classifies a fallback reason into a short, low-cardinality label.
func ReasonLabel(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidRepository):
		return "repository"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrFetch):
		return "fetch"
	case errors.Is(err, ErrParse):
		return "parse"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrPanic):
		return "panic"
	default:
		return "other"
	}
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithPath overrides DefaultPath.
func WithPath(path string) ResolverOption {
	return func(r *Resolver) {
		if path != "" {
			r.path = path
		}
	}
}

// WithParser replaces the dialect parser.
func WithParser(parser Parser) ResolverOption {
	return func(r *Resolver) {
		if parser != nil {
			r.parser = parser
		}
	}
}

// WithPolicy sets the validation policy. The default is schema.PolicyPartial.
func WithPolicy(policy schema.Policy) ResolverOption {
	return func(r *Resolver) {
		r.policy = policy
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithObserver sets an Observer.
func WithObserver(observer Observer) ResolverOption {
	return func(r *Resolver) {
		r.observer = observer
	}
}

// Resolver turns a repository identifier into a validated Config.
// It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	fetcher  Fetcher
	parser   Parser
	path     string
	policy   schema.Policy
	logger   *slog.Logger
	observer Observer
}

// NewResolver creates a Resolver reading through fetcher.
func NewResolver(fetcher Fetcher, opts ...ResolverOption) *Resolver {
	resolver := &Resolver{
		fetcher:  fetcher,
		parser:   dialect.NewParser(),
		path:     DefaultPath,
		policy:   schema.PolicyPartial,
		logger:   slog.Default(),
		observer: nil,
	}

	for _, apply := range opts {
		apply(resolver)
	}

	return resolver
}

// Path returns the in-repository path the resolver fetches.
func (r *Resolver) Path() string {
	return r.path
}

// Resolve fetches, parses and validates the configuration of repository.
// It never fails: on any error it returns the default configuration with
// Outcome set to OutcomeFallback and the cause in Reason.
func (r *Resolver) Resolve(ctx context.Context, repository string) (result Result) {
	defer r.recoverInto(repository, &result)

	repo, err := ParseRepository(repository)
	if err != nil {
		return r.finish(r.fallback(repository, err))
	}

	start := time.Now()
	data, err := r.fetcher.Fetch(ctx, repo, r.path)
	r.observeFetch(time.Since(start), err)

	if err != nil {
		return r.finish(r.fallback(repository, fmt.Errorf("%w %s from %s: %w", ErrFetch, r.path, repo, err)))
	}

	return r.finish(r.resolve(repository, data))
}

// ResolveText runs the pipeline on already retrieved text. Like Resolve it
// always returns a usable configuration.
func (r *Resolver) ResolveText(repository string, data []byte) (result Result) {
	defer r.recoverInto(repository, &result)

	return r.finish(r.resolve(repository, data))
}

func (r *Resolver) resolve(repository string, data []byte) Result {
	doc, err := r.parser.Parse(data)
	if err != nil {
		return r.fallback(repository, fmt.Errorf("%w: %w", ErrParse, err))
	}

	merged := tree.Merge(configSchema.Defaults(), doc.Tree)

	validated, err := configSchema.Validate(merged, r.policy)
	if err != nil {
		result := r.fallback(repository, fmt.Errorf("%w: %w", ErrValidation, err))
		result.Diagnostics = doc.Diagnostics

		return result
	}

	cfg, err := project(validated)
	if err != nil {
		result := r.fallback(repository, fmt.Errorf("%w: %w", ErrValidation, err))
		result.Diagnostics = doc.Diagnostics

		return result
	}

	return Result{
		Repository:  repository,
		Config:      cfg,
		Outcome:     OutcomeResolved,
		Reason:      nil,
		Diagnostics: doc.Diagnostics,
		Fallbacks:   validated.Fallbacks,
		Unknown:     validated.Unknown,
	}
}

func (r *Resolver) fallback(repository string, reason error) Result {
	return Result{
		Repository:  repository,
		Config:      Default(),
		Outcome:     OutcomeFallback,
		Reason:      reason,
		Diagnostics: nil,
		Fallbacks:   nil,
		Unknown:     nil,
	}
}

// finish logs the result and reports it to the observer.
func (r *Resolver) finish(result Result) Result {
	attrs := []any{
		slog.String("repository", result.Repository),
		slog.String("path", r.path),
		slog.String("policy", r.policy.String()),
	}

	for _, diag := range result.Diagnostics {
		r.logger.Debug("configuration line skipped", append(attrs,
			slog.Int("line", diag.Line), slog.String("reason", diag.Message))...)
	}

	for _, field := range result.Fallbacks {
		r.logger.Warn("configuration field fell back to default", append(attrs,
			slog.String("field", field.Path), slog.String("error", field.Error()))...)

		if r.observer != nil {
			r.observer.ObserveFieldFallback(field.Path)
		}
	}

	if len(result.Unknown) > 0 {
		r.logger.Info("configuration keys ignored", append(attrs, slog.Any("keys", result.Unknown))...)
	}

	if result.Outcome == OutcomeFallback {
		r.logger.Warn("using default configuration", append(attrs,
			slog.String("reason", ReasonLabel(result.Reason)), slog.String("error", result.Reason.Error()))...)
	} else {
		r.logger.Info("configuration resolved", append(attrs,
			slog.Int("fallbacks", len(result.Fallbacks)), slog.Int("diagnostics", len(result.Diagnostics)))...)
	}

	if r.observer != nil {
		r.observer.ObserveResolution(result.Outcome, ReasonLabel(result.Reason))
	}

	return result
}

func (r *Resolver) observeFetch(elapsed time.Duration, err error) {
	if r.observer != nil {
		r.observer.ObserveFetch(elapsed, err)
	}
}

// recoverInto converts a panic anywhere in the pipeline into a fallback result.
func (r *Resolver) recoverInto(repository string, result *Result) {
	rec := recover()
	if rec == nil {
		return
	}

	fallback := r.fallback(repository, fmt.Errorf("%w: %v", ErrPanic, rec))
	*result = fallback

	// A panicking logger or observer must not escape either.
	defer func() { _ = recover() }()

	r.logger.Error("panic recovered while resolving configuration",
		slog.String("repository", repository),
		slog.String("panic", fmt.Sprintf("%v", rec)),
		slog.String("stack", string(debug.Stack())))

	*result = r.finish(fallback)
}
