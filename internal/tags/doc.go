// Package tags persists user-authored project metadata and enforces the
// rules for changing it.
//
// Three JSON documents live in the data directory:
//
//	project-tags.json     Assignments: project name -> Assignment
//	tag-definitions.json  Definitions: progress enum + category registry
//	tag-colors.json       Colors: display token per progress value and category
//
// # Reads
//
// [Store] loads a document fresh on every call. A missing document is
// seeded with its defaults, which are written to disk before being
// returned. A malformed document is logged and its defaults are returned
// WITHOUT being written, so a hand-edited file with a typo is never
// clobbered.
//
// # Writes
//
// Saves replace the whole document atomically (temp file + rename).
// [Manager] serializes read-modify-write cycles with an in-process mutex
// and an advisory file lock shared with other pdash processes.
//
// # Errors
//
// Lifecycle failures match [ErrNotFound] or [ErrConflict] via errors.Is.
// Use errors.As with [*TagInUseError] to get the projects blocking a delete.
package tags
