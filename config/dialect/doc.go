// Package dialect parses the repository configuration file format.
//
// The format is line oriented:
//
//	# comment
//	[github.commits]
//	postToBluesky = false
//
//	stats.enable = true
//
// A section header sets a key prefix for the pairs that follow it, up to the
// next header. Keys may contain dots, which denote nesting just like a section
// prefix does; "[github.commits]\npostToBluesky=false" and
// "github.commits.postToBluesky=false" build the same tree. Only the first
// unescaped "=" separates key from value, and "\=" writes a literal "=" into a
// key.
//
// Parsing is permissive. Lines that are neither blank, comment, section nor
// pair are skipped and reported as diagnostics; they never fail a parse.
//
// # Value inference
//
// Each value is typed by the first matching rule:
//
//  1. true or false, case-insensitive: boolean
//  2. a finite number accepted by strconv.ParseFloat: number
//  3. contains a comma: list, each trimmed element inferred by these rules
//  4. anything else: string, with one layer of matching quotes removed
//
// Quotes are removed by the last rule only, so a quoted "true" or "3" stays a
// string. A quoted value containing a comma is still split by rule 3.
package dialect
