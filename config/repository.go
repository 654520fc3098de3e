package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRepository is returned for identifiers that are not "owner/name".
var ErrInvalidRepository = errors.New("invalid repository identifier")

// Repository identifies a repository on the source-control host.
type Repository struct {
	Owner string
	Name  string
}

// String returns "owner/name".
func (r Repository) String() string {
	return r.Owner + "/" + r.Name
}

// ParseRepository parses an "owner/name" identifier. Both parts must be
// non-empty and use only letters, digits, "-", "_" and ".", and neither may
// be "." or "..".
func ParseRepository(id string) (Repository, error) {
	owner, name, found := strings.Cut(id, "/")
	if !found {
		return Repository{}, fmt.Errorf("%w: %q: missing \"/\"", ErrInvalidRepository, id)
	}

	for _, part := range []string{owner, name} {
		err := checkRepositoryPart(part)
		if err != nil {
			return Repository{}, fmt.Errorf("%w: %q: %w", ErrInvalidRepository, id, err)
		}
	}

	return Repository{Owner: owner, Name: name}, nil
}

var (
	errEmptyPart   = errors.New("empty owner or name")
	errDotPart     = errors.New("owner or name is a dot path")
	errInvalidRune = errors.New("unsupported character")
)

func checkRepositoryPart(part string) error {
	if part == "" {
		return errEmptyPart
	}

	if part == "." || part == ".." {
		return errDotPart
	}

	for _, r := range part {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.':
		default:
			return fmt.Errorf("%w %q", errInvalidRune, r)
		}
	}

	return nil
}
