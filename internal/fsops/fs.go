// Package fsops provides the filesystem primitives datebucket relies on.
//
// Every read and mutation made by the planner and the executor goes through
// the FS interface, so tests can substitute an instrumented or failing
// implementation without touching the real disk.
//
// Key features:
//   - Non-clobbering copy (O_EXCL) that preserves mode and modification time
//   - Rename that refuses to replace an existing destination
//   - Testable via the FS interface
package fsops

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// ErrDestinationExists is returned by Copy and Rename when the destination
// path is already present.
var ErrDestinationExists = errors.New("destination already exists")

// FS provides an abstraction for filesystem operations.
type FS interface {
	// ReadDir lists the immediate entries of a directory.
	ReadDir(path string) ([]os.DirEntry, error)

	// Stat returns file info, following symlinks.
	Stat(path string) (os.FileInfo, error)

	// Lstat returns file info without following symlinks.
	Lstat(path string) (os.FileInfo, error)

	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string, perm os.FileMode) error

	// Copy duplicates the regular file at src into a new file at dst.
	Copy(src, dst string) error

	// Rename moves src to dst.
	Rename(src, dst string) error

	// Exists checks if a path exists.
	Exists(path string) (bool, error)
}

// RealFS implements FS using actual OS operations.
type RealFS struct{}

// NewRealFS creates a new RealFS.
func NewRealFS() *RealFS {
	return &RealFS{}
}

// ReadDir lists the immediate entries of a directory.
func (rfs *RealFS) ReadDir(path string) ([]os.DirEntry, error) {
	return os.ReadDir(path)
}

// Stat returns file info, following symlinks.
func (rfs *RealFS) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// Lstat returns file info without following symlinks.
func (rfs *RealFS) Lstat(path string) (os.FileInfo, error) {
	return os.Lstat(path)
}

// MkdirAll creates a directory and all parent directories.
func (rfs *RealFS) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Copy copies a single file from src to dst.
// The destination must not exist; it is created with O_EXCL so a file that
// appeared after planning is never overwritten. Permission bits and the
// modification time of src are carried over to dst.
func (rfs *RealFS) Copy(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat source: %w", err)
	}
	if srcInfo.IsDir() {
		return fmt.Errorf("cannot copy directory %q", src)
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer func() {
		_ = srcFile.Close()
	}()

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, srcInfo.Mode().Perm())
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", ErrDestinationExists, dst)
		}
		return fmt.Errorf("failed to create destination: %w", err)
	}

	// Remove the partial file on failure
	ok := false
	defer func() {
		if !ok {
			_ = dstFile.Close()
			_ = os.Remove(dst)
		}
	}()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return fmt.Errorf("failed to copy file contents: %w", err)
	}
	if err := dstFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync destination: %w", err)
	}
	if err := dstFile.Close(); err != nil {
		return fmt.Errorf("failed to close destination: %w", err)
	}
	ok = true

	mtime := srcInfo.ModTime()
	if err := os.Chtimes(dst, mtime, mtime); err != nil {
		return fmt.Errorf("failed to preserve modification time: %w", err)
	}

	return nil
}

// Rename moves src to dst. os.Rename silently replaces an existing file on
// Unix, so the destination is checked first.
func (rfs *RealFS) Rename(src, dst string) error {
	exists, err := rfs.Exists(dst)
	if err != nil {
		return fmt.Errorf("failed to check destination: %w", err)
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrDestinationExists, dst)
	}
	return os.Rename(src, dst)
}

// Exists checks if a path exists.
func (rfs *RealFS) Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
