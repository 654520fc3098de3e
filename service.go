package bluecommit

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/0xalexb/bluecommit/config"
	filefetcher "github.com/0xalexb/bluecommit/config/fetcher/file"
	gitfetcher "github.com/0xalexb/bluecommit/config/fetcher/git"
	githubfetcher "github.com/0xalexb/bluecommit/config/fetcher/github"
	"github.com/0xalexb/bluecommit/httpapi"
	"github.com/0xalexb/bluecommit/listener"
	"github.com/0xalexb/bluecommit/metrics"
	"github.com/0xalexb/bluecommit/settings"

	"go.uber.org/fx"
)

// ListenerName names the API listener and tags its handler and config in DI.
const ListenerName = "api"

const (
	// requestTimeoutMargin is added to the fetch timeout to bound one API request.
	requestTimeoutMargin = 5 * time.Second
	// writeTimeoutMargin keeps the connection open long enough to write the
	// response of a request that used its whole timeout.
	writeTimeoutMargin = 5 * time.Second
)

// RequestTimeout bounds one API request. GitHub sources get their fetch
// timeout plus a margin; local sources use httpapi.DefaultRequestTimeout.
func RequestTimeout(s *settings.Settings) time.Duration {
	if s.Source.Kind != settings.SourceGitHub {
		return httpapi.DefaultRequestTimeout
	}

	fetch := time.Duration(s.Source.GitHub.Timeout)
	if fetch <= 0 {
		fetch = githubfetcher.DefaultTimeout
	}

	return fetch + requestTimeoutMargin
}

// ListenerConfig returns the API listener configuration. Its write timeout
// outlasts RequestTimeout so that timed out requests still get a response.
func ListenerConfig(s *settings.Settings) listener.Config {
	return listener.Config{ //nolint:exhaustruct // defaults fill the rest
		Address:      s.Listen,
		WriteTimeout: RequestTimeout(s) + writeTimeoutMargin,
	}
}

// NewFetcher builds the fetcher selected by source.
//
//nolint:ireturn // the concrete type depends on the source kind
func NewFetcher(source settings.Source) (config.Fetcher, error) {
	switch source.Kind {
	case settings.SourceGitHub:
		return githubfetcher.NewFetcher(githubfetcher.Config{
			APIURL:  source.GitHub.APIURL,
			Token:   source.GitHub.Token,
			Ref:     source.GitHub.Ref,
			Timeout: time.Duration(source.GitHub.Timeout),
			Client:  nil,
		}), nil
	case settings.SourceGit:
		fetcher, err := gitfetcher.NewFetcher(source.Git.Root, source.Git.Ref)
		if err != nil {
			return nil, fmt.Errorf("git source: %w", err)
		}

		return fetcher, nil
	case settings.SourceFile:
		fetcher, err := filefetcher.NewFetcher(source.File.Root)()
		if err != nil {
			return nil, fmt.Errorf("file source: %w", err)
		}

		return fetcher, nil
	default:
		return nil, fmt.Errorf("%w: %q", settings.ErrUnknownSource, source.Kind)
	}
}

// NewResolver builds the resolver described by s.
func NewResolver(s *settings.Settings, fetcher config.Fetcher, observer config.Observer, logger *slog.Logger) *config.Resolver {
	return config.NewResolver(fetcher,
		config.WithPath(s.ConfigPath),
		config.WithPolicy(s.ValidationPolicy()),
		config.WithObserver(observer),
		config.WithLogger(logger),
	)
}

// ServiceModule wires the configuration service from validated settings:
// fetcher, resolver, metrics recorder and the API listener on s.Listen.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func ServiceModule(s *settings.Settings) fx.Option {
	tag := fmt.Sprintf(`name:"%s"`, ListenerName)

	return fx.Module("bluecommit",
		fx.Supply(s),
		fx.Provide(
			func(s *settings.Settings) (config.Fetcher, error) {
				return NewFetcher(s.Source)
			},
			metrics.NewRecorder,
			func(s *settings.Settings, fetcher config.Fetcher, recorder *metrics.Recorder, logger *slog.Logger) *config.Resolver {
				return NewResolver(s, fetcher, recorder, logger)
			},
			fx.Annotate(
				func(s *settings.Settings, resolver *config.Resolver, recorder *metrics.Recorder, logger *slog.Logger) http.Handler {
					return httpapi.NewHandler(resolver, httpapi.Options{
						Metrics:        recorder.Handler(),
						Logger:         logger,
						RequestTimeout: RequestTimeout(s),
					})
				},
				fx.ResultTags(tag),
			),
		),
		fx.Supply(fx.Annotate(ListenerConfig(s), fx.ResultTags(tag))),
		listener.NewModule(ListenerName),
	)
}
