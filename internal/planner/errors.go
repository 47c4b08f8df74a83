package planner

import "errors"

var (
	// ErrSourceUnreadable indicates the source directory could not be listed.
	ErrSourceUnreadable = errors.New("source directory unreadable")

	// ErrMetadataUnavailable indicates an entry could not be stat'ed.
	ErrMetadataUnavailable = errors.New("metadata unavailable")

	// ErrDestinationCollision indicates a destination path is already taken.
	ErrDestinationCollision = errors.New("destination collision")

	// ErrDirectoryCreation indicates a bucket directory could not be created.
	ErrDirectoryCreation = errors.New("directory creation failed")
)
