package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/0xalexb/bluecommit/config"
	"github.com/0xalexb/bluecommit/config/dialect"
)

// DefaultAPIURL is the public GitHub REST endpoint.
const DefaultAPIURL = "https://api.github.com"

// DefaultTimeout bounds a single contents request.
const DefaultTimeout = 10 * time.Second

const (
	acceptRaw     = "application/vnd.github.raw+json"
	apiVersion    = "2022-11-28"
	maxErrorBody  = 512
	userAgentName = "bluecommit"
)

// ErrInvalidAPIURL is returned when the configured API URL cannot be parsed.
var ErrInvalidAPIURL = errors.New("invalid API URL")

// StatusError reports a non-success HTTP status other than 404.
type StatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("GitHub API GET %s: %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	}

	return fmt.Sprintf("GitHub API GET %s: %d %s", e.URL, e.StatusCode, e.Body)
}

// Config holds the client settings.
type Config struct {
	// APIURL defaults to DefaultAPIURL. GitHub Enterprise uses https://host/api/v3.
	APIURL string
	// Token is sent as a Bearer token when set.
	Token string
	// Ref is a branch, tag or commit. Empty means the default branch.
	Ref string
	// Timeout defaults to DefaultTimeout.
	Timeout time.Duration
	// Client defaults to http.DefaultClient.
	Client *http.Client
}

// Fetcher implements config.Fetcher against the GitHub contents API.
type Fetcher struct {
	apiURL  string
	token   string
	ref     string
	timeout time.Duration
	client  *http.Client
}

// NewFetcher creates a Fetcher, filling unset fields with defaults.
func NewFetcher(cfg Config) *Fetcher {
	fetcher := &Fetcher{
		apiURL:  strings.TrimRight(cfg.APIURL, "/"),
		token:   cfg.Token,
		ref:     cfg.Ref,
		timeout: cfg.Timeout,
		client:  cfg.Client,
	}

	if fetcher.apiURL == "" {
		fetcher.apiURL = DefaultAPIURL
	}

	if fetcher.timeout <= 0 {
		fetcher.timeout = DefaultTimeout
	}

	if fetcher.client == nil {
		fetcher.client = http.DefaultClient
	}

	return fetcher
}

// Fetch downloads path from repo. The body is capped one byte above
// dialect.MaxFileSize so oversized files still fail in the parser.
func (f *Fetcher) Fetch(ctx context.Context, repo config.Repository, path string) ([]byte, error) {
	endpoint, err := f.contentsURL(repo, path)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", acceptRaw)
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	req.Header.Set("User-Agent", userAgentName)

	if f.token != "" {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GitHub API GET %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s in %s: %w", path, repo, config.ErrNotFound)
	case resp.StatusCode >= http.StatusBadRequest:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

		return nil, &StatusError{StatusCode: resp.StatusCode, URL: endpoint, Body: strings.TrimSpace(string(body))}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, dialect.MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", endpoint, err)
	}

	return data, nil
}

func (f *Fetcher) contentsURL(repo config.Repository, path string) (string, error) {
	base, err := url.Parse(f.apiURL)
	if err != nil {
		return "", fmt.Errorf("%w %q: %w", ErrInvalidAPIURL, f.apiURL, err)
	}

	segments := []string{"repos", repo.Owner, repo.Name, "contents"}
	segments = append(segments, strings.Split(strings.TrimLeft(path, "/"), "/")...)

	endpoint := base.JoinPath(segments...)

	if f.ref != "" {
		query := endpoint.Query()
		query.Set("ref", f.ref)
		endpoint.RawQuery = query.Encode()
	}

	return endpoint.String(), nil
}
