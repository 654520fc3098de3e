package bluecommit_test

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/0xalexb/bluecommit"
	"github.com/0xalexb/bluecommit/config"
	filefetcher "github.com/0xalexb/bluecommit/config/fetcher/file"
	gitfetcher "github.com/0xalexb/bluecommit/config/fetcher/git"
	githubfetcher "github.com/0xalexb/bluecommit/config/fetcher/github"
	"github.com/0xalexb/bluecommit/httpapi"
	"github.com/0xalexb/bluecommit/listener"
	"github.com/0xalexb/bluecommit/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

func freePort(t *testing.T) string {
	t.Helper()

	listenCfg := net.ListenConfig{}

	ln, err := listenCfg.Listen(context.Background(), "tcp", "127.0.0.1:0")
	require.NoError(t, err)

	defer func() { _ = ln.Close() }()

	return ln.Addr().String()
}

func fileSettings(t *testing.T, listen string) *settings.Settings {
	t.Helper()

	s := &settings.Settings{
		Listen: listen,
		Source: settings.Source{
			Kind: settings.SourceFile,
			File: settings.FileSource{Root: filepath.Join("testdata", "checkouts")},
		},
	}
	s.SetDefaults()
	require.NoError(t, s.Validate())

	return s
}

func TestNewFetcher(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		source settings.Source
		check  func(t *testing.T, fetcher config.Fetcher)
	}{
		{
			name:   "github",
			source: settings.Source{Kind: settings.SourceGitHub},
			check: func(t *testing.T, fetcher config.Fetcher) {
				t.Helper()
				assert.IsType(t, &githubfetcher.Fetcher{}, fetcher)
			},
		},
		{
			name:   "git",
			source: settings.Source{Kind: settings.SourceGit, Git: settings.GitSource{Root: t.TempDir()}},
			check: func(t *testing.T, fetcher config.Fetcher) {
				t.Helper()
				assert.IsType(t, &gitfetcher.Fetcher{}, fetcher)
			},
		},
		{
			name:   "file",
			source: settings.Source{Kind: settings.SourceFile, File: settings.FileSource{Root: t.TempDir()}},
			check: func(t *testing.T, fetcher config.Fetcher) {
				t.Helper()
				assert.IsType(t, &filefetcher.Fetcher{}, fetcher)
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			fetcher, err := bluecommit.NewFetcher(testCase.source)
			require.NoError(t, err)
			testCase.check(t, fetcher)
		})
	}
}

func TestNewFetcher_Errors(t *testing.T) {
	t.Parallel()

	_, err := bluecommit.NewFetcher(settings.Source{Kind: "svn"})
	require.ErrorIs(t, err, settings.ErrUnknownSource)

	_, err = bluecommit.NewFetcher(settings.Source{Kind: settings.SourceGit})
	require.ErrorIs(t, err, gitfetcher.ErrEmptyRoot)

	fetcher, err := bluecommit.NewFetcher(settings.Source{Kind: settings.SourceFile, File: settings.FileSource{Root: "/nonexistent/checkouts"}})
	require.Error(t, err)
	assert.Nil(t, fetcher)
}

func TestRequestTimeout(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		source   settings.Source
		expected time.Duration
	}{
		{
			name: "github uses fetch timeout",
			source: settings.Source{
				Kind:   settings.SourceGitHub,
				GitHub: settings.GitHubSource{Timeout: settings.Duration(40 * time.Second)},
			},
			expected: 45 * time.Second,
		},
		{
			name:     "github without timeout",
			source:   settings.Source{Kind: settings.SourceGitHub},
			expected: githubfetcher.DefaultTimeout + 5*time.Second,
		},
		{
			name: "file ignores github timeout",
			source: settings.Source{
				Kind:   settings.SourceFile,
				GitHub: settings.GitHubSource{Timeout: settings.Duration(40 * time.Second)},
			},
			expected: httpapi.DefaultRequestTimeout,
		},
		{
			name:     "git",
			source:   settings.Source{Kind: settings.SourceGit},
			expected: httpapi.DefaultRequestTimeout,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			s := &settings.Settings{Source: testCase.source}

			assert.Equal(t, testCase.expected, bluecommit.RequestTimeout(s))
		})
	}
}

func TestListenerConfig_WriteTimeoutOutlastsRequest(t *testing.T) {
	t.Parallel()

	s := &settings.Settings{
		Listen: "127.0.0.1:0",
		Source: settings.Source{
			Kind:   settings.SourceGitHub,
			GitHub: settings.GitHubSource{Timeout: settings.Duration(time.Minute)},
		},
	}

	cfg := bluecommit.ListenerConfig(s)
	cfg.SetDefaults()

	assert.Equal(t, "127.0.0.1:0", cfg.Address)
	assert.Greater(t, cfg.WriteTimeout, bluecommit.RequestTimeout(s))
	assert.Greater(t, cfg.WriteTimeout, listener.DefaultWriteTimeout)
	require.NoError(t, cfg.Validate())
}

func TestServiceModule_ServesConfiguration(t *testing.T) {
	t.Parallel()

	addr := freePort(t)

	var resolver *config.Resolver

	app := fxtest.New(t,
		fx.Supply(discardSlog()),
		bluecommit.ServiceModule(fileSettings(t, addr)),
		fx.Populate(&resolver),
	)

	app.RequireStart()
	t.Cleanup(app.RequireStop)

	require.NotNil(t, resolver)
	assert.Equal(t, config.DefaultPath, resolver.Path())

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet,
		"http://"+addr+"/v1/repos/octo/quiet/config", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req) //nolint:gosec // test code, URL from test server
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var report config.Report

	require.NoError(t, json.Unmarshal(body, &report))
	assert.Equal(t, config.OutcomeResolved, report.Outcome)
	assert.False(t, report.Config.GitHub.Commits.PostToBluesky)
	assert.True(t, report.Config.Stats.Enable, "mistyped stats.enable keeps its default")
	require.Len(t, report.Fallbacks, 1)
	assert.Equal(t, config.FieldStatsEnable, report.Fallbacks[0].Path)

	metricsReq, err := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://"+addr+"/metrics", nil)
	require.NoError(t, err)

	metricsResp, err := http.DefaultClient.Do(metricsReq) //nolint:gosec // test code, URL from test server
	require.NoError(t, err)

	defer func() { _ = metricsResp.Body.Close() }()

	metricsBody, err := io.ReadAll(metricsResp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(metricsBody), `bluecommit_resolutions_total{outcome="resolved",reason=""} 1`)
	assert.Contains(t, string(metricsBody), `bluecommit_field_fallbacks_total{field="stats.enable"} 1`)
}

func TestServiceModule_StrictPolicy(t *testing.T) {
	t.Parallel()

	s := fileSettings(t, "127.0.0.1:0")
	s.Policy = "strict"

	var resolver *config.Resolver

	app := fxtest.New(t,
		fx.Supply(discardSlog()),
		bluecommit.ServiceModule(s),
		fx.Populate(&resolver),
	)

	app.RequireStart()
	t.Cleanup(app.RequireStop)

	result := resolver.Resolve(context.Background(), "octo/quiet")

	assert.Equal(t, config.OutcomeFallback, result.Outcome)
	assert.Equal(t, "validation", config.ReasonLabel(result.Reason))
	assert.Equal(t, config.Default(), result.Config)
}

func TestServiceModule_BadSourceFailsStart(t *testing.T) {
	t.Parallel()

	s := fileSettings(t, "127.0.0.1:0")
	s.Source.File.Root = "/nonexistent/checkouts"

	app := fx.New(
		fx.NopLogger,
		fx.Supply(discardSlog()),
		bluecommit.ServiceModule(s),
	)

	require.Error(t, app.Start(context.Background()))
}
