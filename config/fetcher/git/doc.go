// Package git provides a Fetcher that reads configuration files from local
// git clones using go-git, without touching any working tree.
//
// Clones are expected below a root directory laid out as root/owner/name
// (bare or not). The file is read from the commit that Ref resolves to,
// so uncommitted edits are never picked up.
package git
