package services

import (
	"context"
)

// PathResolver turns a slash-delimited relative path into a chain of folder
// records, creating missing segments.
type PathResolver interface {
	// Resolve walks relativePath from startFolderID (nil = root), creating
	// each missing segment, and returns the final folder id. An empty path,
	// or one that reduces to no segments after normalization, returns
	// startFolderID unchanged. Idempotent: concurrent resolutions of the
	// same not-yet-existing path converge on one surviving folder per
	// (owner, parent, name).
	Resolve(ctx context.Context, ownerID string, startFolderID *string, relativePath string) (*string, error)
}
