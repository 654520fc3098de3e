// Package settings loads the runtime settings of the bluecommit service.
//
// Settings files are YAML or TOML, chosen by extension. An optional section
// path selects a sub-document, using colon (:) as the separator for nested
// keys, so the service can share a file with other programs:
//
//	services:
//	  bluecommit:
//	    listen: ":8080"
//	    source:
//	      kind: github
//
// is loaded with Load("settings.yaml", "services:bluecommit").
//
// Loading follows read, decode, defaults, validate. GITHUB_TOKEN, then
// GH_TOKEN, fill an empty GitHub token.
package settings
