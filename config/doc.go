// Package config resolves the per-repository bot configuration.
//
// A repository carries a small text file (DefaultPath) in the dialect
// described by package config/dialect. Resolution runs a fixed pipeline:
//
//	Fetcher -> Parser -> tree.Merge with Schema().Defaults() -> schema validation -> Config
//
// The pipeline is total. A fetch error, a malformed repository identifier, an
// oversized file, a failed strict validation or even a panic all end in the
// default configuration, with the reason recorded in Result.Reason and logged
// at the resolver boundary. Callers always get a fully populated Config.
//
// # Extension points
//
//   - Fetcher: retrieves raw file text for a repository (see config/fetcher/...)
//   - Parser: turns text into a tree (dialect.Parser by default)
//   - Observer: receives outcome and latency events (see package metrics)
//
// # Example
//
//	resolver := config.NewResolver(githubfetcher.New(githubfetcher.WithToken(token)))
//	result := resolver.Resolve(ctx, "octo/hello")
//	if result.Config.GitHub.Commits.PostToBluesky {
//	    // publish
//	}
package config
