// Package cache holds the last full project scan in memory.
//
// It is the only mutable cache in pdash and it never holds tag data: tag
// documents are read fresh on every query so edits show up without a
// rescan. A snapshot has no TTL; it is replaced only by an explicit
// refresh or dropped by [Projects.Invalidate].
//
// The zero value is an empty cache ready for use. It is safe for
// concurrent use by the HTTP server's handlers.
package cache
