package repositories

import (
	"context"

	"github.com/AryanGore/LabDrop/internal/domain/models"
)

// FolderRepository defines data access operations for folder records.
//
// Every query is scoped to a single owner; there are no cross-owner reads or
// writes at this layer or above it.
type FolderRepository interface {
	// Create inserts a new folder. Returns domain.ErrConflict (wrapped) when
	// a non-deleted sibling with the same name already exists under the same
	// (owner, parent).
	Create(ctx context.Context, folder *models.Folder) error

	// GetByID retrieves a folder by ID regardless of deletion state.
	// Returns domain.ErrNotFound if absent or owned by someone else.
	GetByID(ctx context.Context, id, ownerID string) (*models.Folder, error)

	// FindChild finds the non-deleted child with the given name under
	// (owner, parent). parentID nil means root level.
	// Returns domain.ErrNotFound when no such child exists.
	FindChild(ctx context.Context, ownerID string, parentID *string, name string) (*models.Folder, error)

	// ListChildren lists non-deleted immediate child folders.
	ListChildren(ctx context.Context, ownerID string, parentID *string) ([]models.Folder, error)

	// FindDescendants returns every folder, deleted or not, whose path
	// starts with pathPrefix. Deleted rows are included so a repeated
	// cascade delete stays idempotent.
	FindDescendants(ctx context.Context, ownerID, pathPrefix string) ([]models.Folder, error)

	// UpdateName rewrites only the folder's own name field.
	UpdateName(ctx context.Context, id, ownerID, name string) error

	// RewritePathPrefix replaces the leading oldPrefix of the folder's path
	// with newPrefix. The rewrite is computed against the row's current
	// stored value, not a caller-side snapshot, so interleaved cascades on
	// overlapping subtrees stay internally consistent. A row whose path no
	// longer starts with oldPrefix is left untouched.
	RewritePathPrefix(ctx context.Context, id, ownerID, oldPrefix, newPrefix string) error

	// MarkDeleted soft-deletes the given folders. Already-deleted rows keep
	// their original deletion timestamp.
	MarkDeleted(ctx context.Context, ownerID string, ids []string) error

	// AppendFileID links a file id onto the folder's denormalized file list.
	AppendFileID(ctx context.Context, folderID, ownerID, fileID string) error

	// RemoveFileID unlinks a file id from the folder's denormalized file list.
	RemoveFileID(ctx context.Context, folderID, ownerID, fileID string) error
}
