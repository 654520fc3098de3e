// Package bluecommit hosts the configuration service of the bluecommit bot.
//
// The bot reacts to repository events and posts to Bluesky. Each repository
// tunes that behaviour with a small key=value file, .github/bluecommit.conf.
// This package assembles the pieces that resolve that file into a validated
// configuration and serve it over HTTP:
//
//   - App and its Options run everything under an Fx lifecycle with slog logging.
//   - ServiceModule wires a fetcher, the resolver, metrics and the API listener
//     from a settings.Settings.
//
// The configuration language itself lives in config and its subpackages.
package bluecommit
