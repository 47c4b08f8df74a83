package engine

import "errors"

var (
	// ErrInvalidSource indicates the source directory is missing or not a directory.
	ErrInvalidSource = errors.New("source directory does not exist")

	// ErrRelocation indicates a copy or rename failed.
	ErrRelocation = errors.New("relocation failed")
)
