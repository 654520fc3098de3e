package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/0xalexb/bluecommit/config"
	"github.com/0xalexb/bluecommit/config/dialect"
)

// DefaultRef is used when no revision is configured.
const DefaultRef = "HEAD"

// ErrEmptyRoot is returned by NewFetcher when no root directory is given.
var ErrEmptyRoot = errors.New("root directory is empty")

// Fetcher implements config.Fetcher over local clones.
type Fetcher struct {
	root string
	ref  string
}

// NewFetcher creates a Fetcher reading ref from clones below root.
// An empty ref means DefaultRef.
func NewFetcher(root, ref string) (*Fetcher, error) {
	if root == "" {
		return nil, ErrEmptyRoot
	}

	if ref == "" {
		ref = DefaultRef
	}

	return &Fetcher{root: filepath.Clean(root), ref: ref}, nil
}

// Fetch reads path from the commit ref resolves to in the clone of repo.
// A missing clone, revision or file wraps config.ErrNotFound.
func (f *Fetcher) Fetch(ctx context.Context, repo config.Repository, path string) ([]byte, error) {
	err := ctx.Err()
	if err != nil {
		return nil, fmt.Errorf("reading %s from %s: %w", path, repo, err)
	}

	clone, err := gogit.PlainOpen(filepath.Join(f.root, repo.Owner, repo.Name))
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("clone of %s: %w", repo, config.ErrNotFound)
		}

		return nil, fmt.Errorf("opening clone of %s: %w", repo, err)
	}

	hash, err := clone.ResolveRevision(plumbing.Revision(f.ref))
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, fmt.Errorf("revision %q of %s: %w", f.ref, repo, config.ErrNotFound)
		}

		return nil, fmt.Errorf("resolving revision %q of %s: %w", f.ref, repo, err)
	}

	commit, err := clone.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("loading commit %s of %s: %w", hash, repo, err)
	}

	file, err := commit.File(strings.TrimLeft(filepath.ToSlash(path), "/"))
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) || errors.Is(err, object.ErrDirectoryNotFound) {
			return nil, fmt.Errorf("%s at %s in %s: %w", path, f.ref, repo, config.ErrNotFound)
		}

		return nil, fmt.Errorf("finding %s at %s in %s: %w", path, f.ref, repo, err)
	}

	reader, err := file.Reader()
	if err != nil {
		return nil, fmt.Errorf("opening blob %s: %w", file.Hash, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(io.LimitReader(reader, dialect.MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading blob %s: %w", file.Hash, err)
	}

	return data, nil
}
