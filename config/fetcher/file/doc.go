// Package file provides a filesystem Fetcher for the config package.
//
// Repositories are expected as plain checkouts below a root directory,
// laid out as root/owner/name. The configuration file is read from the
// working tree on every call, so edits are picked up without a restart.
//
// Usage:
//
//	fetcher, err := file.NewFetcher("/srv/checkouts")()
//	if err != nil {
//	    // Handle error: root missing or not a directory.
//	}
//	resolver := config.NewResolver(fetcher)
//
// Error Handling:
//   - A missing file wraps config.ErrNotFound
//   - Use errors.Is(err, file.ErrPathIsDirectory) to check for directory errors
//   - Paths that leave the repository directory, directly or through a
//     symbolic link, fail with file.ErrOutsideRoot
//   - Reads stop after dialect.MaxFileSize+1 bytes
package file
