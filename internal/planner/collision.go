package planner

import (
	"fmt"
	"sync"

	"github.com/danieljhkim/datebucket/internal/fsops"
)

// CollisionError describes why a destination path cannot be used.
// It matches ErrDestinationCollision with errors.Is.
type CollisionError struct {
	// Path is the destination path that collided
	Path string

	// Source is the entry that wanted the path
	Source string

	// Reason is a human-readable explanation of the collision
	Reason string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("%v: %s: %s (source %s)", ErrDestinationCollision, e.Path, e.Reason, e.Source)
}

func (e *CollisionError) Unwrap() error {
	return ErrDestinationCollision
}

// CollisionChecker rejects destination paths that already exist on disk or
// were already claimed by another entry in the same run.
type CollisionChecker struct {
	fs fsops.FS

	mu     sync.Mutex
	claims map[string]string
}

// NewCollisionChecker creates a new CollisionChecker.
func NewCollisionChecker(fs fsops.FS) *CollisionChecker {
	return &CollisionChecker{
		fs:     fs,
		claims: make(map[string]string),
	}
}

// Claim reserves destPath for source.
// Returns a *CollisionError if the path is taken, or another error if the
// path could not be checked.
func (c *CollisionChecker) Claim(destPath, source string) error {
	exists, err := c.fs.Exists(destPath)
	if err != nil {
		return fmt.Errorf("failed to check destination %s: %w", destPath, err)
	}
	if exists {
		return &CollisionError{
			Path:   destPath,
			Source: source,
			Reason: "file already exists at destination",
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if owner, taken := c.claims[destPath]; taken {
		return &CollisionError{
			Path:   destPath,
			Source: source,
			Reason: fmt.Sprintf("already claimed by %s", owner),
		}
	}
	c.claims[destPath] = source
	return nil
}

// Owner returns the source that claimed destPath, if any.
func (c *CollisionChecker) Owner(destPath string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	owner, ok := c.claims[destPath]
	return owner, ok
}
