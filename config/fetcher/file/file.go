package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/0xalexb/bluecommit/config"
	"github.com/0xalexb/bluecommit/config/dialect"
)

// ErrPathIsDirectory is returned when the requested path points to a directory instead of a file.
var ErrPathIsDirectory = errors.New("path is a directory, not a file")

// ErrOutsideRoot is returned when the requested path escapes the repository directory.
var ErrOutsideRoot = errors.New("path escapes repository directory")

// ErrEmptyRoot is returned by NewFetcher when no root directory is given.
var ErrEmptyRoot = errors.New("root directory is empty")

// Fetcher implements config.Fetcher over plain checkouts laid out as root/owner/name.
// Files are read on every call.
type Fetcher struct {
	root string
}

// NewFetcher returns a constructor function that creates a Fetcher serving
// checkouts below root. The root must exist and be a directory.
// This pattern is Fx-friendly, allowing the DI container to control when instantiation happens.
func NewFetcher(root string) func() (*Fetcher, error) {
	return func() (*Fetcher, error) {
		if root == "" {
			return nil, ErrEmptyRoot
		}

		cleanRoot := filepath.Clean(root)

		stat, err := os.Stat(cleanRoot)
		if err != nil {
			return nil, fmt.Errorf("stat root %q: %w", cleanRoot, err)
		}

		if !stat.IsDir() {
			return nil, fmt.Errorf("root %q: %w", cleanRoot, fs.ErrInvalid)
		}

		return &Fetcher{root: cleanRoot}, nil
	}
}

// Fetch reads path from the checkout of repo. Symbolic links are followed only
// while they stay inside the repository directory. At most
// dialect.MaxFileSize+1 bytes are read, so oversized files still reach the
// parser's size check.
func (f *Fetcher) Fetch(ctx context.Context, repo config.Repository, path string) ([]byte, error) {
	err := ctx.Err()
	if err != nil {
		return nil, fmt.Errorf("reading %s from %s: %w", path, repo, err)
	}

	repoDir, rel, err := f.resolve(repo, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s in %s: %w", path, repo, config.ErrNotFound)
		}

		return nil, err
	}

	checkout, err := os.OpenRoot(repoDir)
	if err != nil {
		return nil, fmt.Errorf("opening checkout %q: %w", repoDir, err)
	}
	defer checkout.Close()

	file, err := checkout.Open(rel)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s in %s: %w", path, repo, config.ErrNotFound)
		}

		return nil, fmt.Errorf("opening file %q: %w", rel, err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat file %q: %w", rel, err)
	}

	if stat.IsDir() {
		return nil, fmt.Errorf("path %q: %w", filepath.Join(repoDir, rel), ErrPathIsDirectory)
	}

	data, err := io.ReadAll(io.LimitReader(file, dialect.MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading file %q: %w", rel, err)
	}

	return data, nil
}

// resolve returns the repository directory and the path relative to it, both
// with symbolic links evaluated, refusing anything that leaves the directory.
func (f *Fetcher) resolve(repo config.Repository, path string) (string, string, error) {
	if filepath.IsAbs(path) {
		return "", "", fmt.Errorf("%q: %w", path, ErrOutsideRoot)
	}

	repoDir := filepath.Join(f.root, repo.Owner, repo.Name)

	err := checkInside(repoDir, filepath.Join(repoDir, filepath.FromSlash(path)), path)
	if err != nil {
		return "", "", err
	}

	realRepo, err := filepath.EvalSymlinks(repoDir)
	if err != nil {
		return "", "", fmt.Errorf("checkout %q: %w", repoDir, err)
	}

	realPath, err := filepath.EvalSymlinks(filepath.Join(realRepo, filepath.FromSlash(path)))
	if err != nil {
		return "", "", fmt.Errorf("file %q: %w", path, err)
	}

	err = checkInside(realRepo, realPath, path)
	if err != nil {
		return "", "", err
	}

	rel, err := filepath.Rel(realRepo, realPath)
	if err != nil {
		return "", "", fmt.Errorf("%q: %w", path, ErrOutsideRoot)
	}

	return realRepo, rel, nil
}

func checkInside(dir, target, path string) error {
	rel, err := filepath.Rel(dir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%q: %w", path, ErrOutsideRoot)
	}

	return nil
}
