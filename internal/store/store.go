// Package store abstracts where the task document lives. The document is
// always read and written as a single opaque string; there is no
// line-level or partial access.
package store

import "context"

// Store is the interface for whole-document operations.
//
// Read returns the entire document. A missing document is not an error:
// implementations return an empty string so callers see an empty list
// rather than a failure. Write replaces the entire document.
type Store interface {
	Read(ctx context.Context) (string, error)
	Write(ctx context.Context, content string) error
}
