// Package logging builds the process logger on top of log/slog.
// Output is JSON by default, or logfmt-style text for terminals.
package logging
