// Package github provides a Fetcher that reads repository files through the
// GitHub REST contents API.
//
// Files are requested with the raw media type, so the response body is the
// file itself rather than a base64 envelope. A 404 wraps config.ErrNotFound;
// any other error status is returned as a *StatusError.
//
// Usage:
//
//	fetcher := github.NewFetcher(github.Config{Token: os.Getenv("GITHUB_TOKEN")})
//	resolver := config.NewResolver(fetcher)
package github
