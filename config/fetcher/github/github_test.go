package github_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/0xalexb/bluecommit/config"
	"github.com/0xalexb/bluecommit/config/dialect"
	"github.com/0xalexb/bluecommit/config/fetcher/github"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var repo = config.Repository{Owner: "octo", Name: "hello"} //nolint:gochecknoglobals // test fixture

func TestFetcher_Fetch_Success(t *testing.T) {
	t.Parallel()

	var got *http.Request

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())

		_, _ = w.Write([]byte("[stats]\nenable=false\n"))
	}))
	t.Cleanup(server.Close)

	fetcher := github.NewFetcher(github.Config{APIURL: server.URL + "/", Token: "s3cret", Ref: "main"})

	data, err := fetcher.Fetch(context.Background(), repo, config.DefaultPath)

	require.NoError(t, err)
	assert.Equal(t, "[stats]\nenable=false\n", string(data))

	require.NotNil(t, got)
	assert.Equal(t, http.MethodGet, got.Method)
	assert.Equal(t, "/repos/octo/hello/contents/.github/bluecommit.conf", got.URL.Path)
	assert.Equal(t, "main", got.URL.Query().Get("ref"))
	assert.Equal(t, "Bearer s3cret", got.Header.Get("Authorization"))
	assert.Equal(t, "application/vnd.github.raw+json", got.Header.Get("Accept"))
	assert.NotEmpty(t, got.Header.Get("User-Agent"))
}

func TestFetcher_Fetch_NoTokenNoRef(t *testing.T) {
	t.Parallel()

	var got *http.Request

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())

		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	data, err := github.NewFetcher(github.Config{APIURL: server.URL}).Fetch(context.Background(), repo, "bot.conf")

	require.NoError(t, err)
	assert.Empty(t, data)
	assert.Empty(t, got.Header.Get("Authorization"))
	assert.Empty(t, got.URL.RawQuery)
}

func TestFetcher_Fetch_Status(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		status   int
		notFound bool
	}{
		{name: "not found", status: http.StatusNotFound, notFound: true},
		{name: "unauthorized", status: http.StatusUnauthorized},
		{name: "forbidden", status: http.StatusForbidden},
		{name: "server error", status: http.StatusBadGateway},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, `{"message":"nope"}`, testCase.status)
			}))
			t.Cleanup(server.Close)

			data, err := github.NewFetcher(github.Config{APIURL: server.URL}).
				Fetch(context.Background(), repo, config.DefaultPath)

			require.Error(t, err)
			assert.Nil(t, data)

			if testCase.notFound {
				require.ErrorIs(t, err, config.ErrNotFound)

				return
			}

			var statusErr *github.StatusError

			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, testCase.status, statusErr.StatusCode)
			assert.Contains(t, statusErr.Error(), "nope")
			assert.NotErrorIs(t, err, config.ErrNotFound)
		})
	}
}

func TestFetcher_Fetch_BodyIsCapped(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("#", 2*dialect.MaxFileSize)))
	}))
	t.Cleanup(server.Close)

	data, err := github.NewFetcher(github.Config{APIURL: server.URL}).
		Fetch(context.Background(), repo, config.DefaultPath)

	require.NoError(t, err)
	assert.Len(t, data, dialect.MaxFileSize+1)

	_, err = dialect.NewParser().Parse(data)
	require.ErrorIs(t, err, dialect.ErrTooLarge)
}

func TestFetcher_Fetch_Timeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		server.Close()
	})

	fetcher := github.NewFetcher(github.Config{APIURL: server.URL, Timeout: 50 * time.Millisecond})

	_, err := fetcher.Fetch(context.Background(), repo, config.DefaultPath)

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "deadline"))
}

func TestFetcher_Fetch_InvalidAPIURL(t *testing.T) {
	t.Parallel()

	_, err := github.NewFetcher(github.Config{APIURL: "://bad"}).
		Fetch(context.Background(), repo, config.DefaultPath)

	require.ErrorIs(t, err, github.ErrInvalidAPIURL)
}

func TestFetcher_WithResolver(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/repos/octo/quiet/") {
			_, _ = w.Write([]byte("github.commits.postToBluesky = false"))

			return
		}

		http.NotFound(w, r)
	}))
	t.Cleanup(server.Close)

	resolver := config.NewResolver(github.NewFetcher(github.Config{APIURL: server.URL}))

	quiet := resolver.Resolve(context.Background(), "octo/quiet")
	missing := resolver.Resolve(context.Background(), "octo/missing")

	assert.Equal(t, config.OutcomeResolved, quiet.Outcome)
	assert.False(t, quiet.Config.GitHub.Commits.PostToBluesky)
	assert.Equal(t, config.OutcomeFallback, missing.Outcome)
	assert.Equal(t, "not_found", config.ReasonLabel(missing.Reason))
}
