// Package tree provides the untyped intermediate representation of a parsed
// repository configuration.
//
// A tree is a Map from string keys to Values. A Value is one of Bool, Number,
// String, List or Map; the set is closed. Paths address nested maps and are
// written with dots ("github.commits.postToBluesky") or passed as segments.
//
// Maps returned by Merge and Clone never share mutable structure with their
// inputs, so a default tree can be merged any number of times without being
// modified.
package tree
