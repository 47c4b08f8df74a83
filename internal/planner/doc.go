// Package planner handles the planning phase of a relocation run.
//
// The planner scans the immediate entries of a source directory, resolves the
// date bucket of every regular file from its modification time, and produces a
// RelocationPlan of (source, destination) pairs. Bucket directories are created
// as a side effect while planning, exactly once per distinct date even when
// entries are processed by several workers.
//
// Key responsibilities:
//   - Build a RelocationPlan sorted by source path
//   - Skip directory entries (no recursion)
//   - Detect destination collisions (existing files, duplicate claims)
//   - Create each bucket directory at most once via BucketSet
package planner
