package repositories

import (
	"context"

	"github.com/AryanGore/LabDrop/internal/domain/models"
)

// FileRepository defines data access operations for file records.
type FileRepository interface {
	// Create inserts a new file record. No duplicate-name rejection happens
	// here - upload orchestration decides collision policy.
	Create(ctx context.Context, file *models.File) error

	// GetByID retrieves a file by ID regardless of status.
	// Returns domain.ErrNotFound if absent or owned by someone else.
	GetByID(ctx context.Context, id, ownerID string) (*models.File, error)

	// FindActive finds the ACTIVE file with the given name in
	// (owner, folder). Returns domain.ErrNotFound when no such file exists.
	FindActive(ctx context.Context, ownerID string, folderID *string, name string) (*models.File, error)

	// ListActive lists ACTIVE files in a folder (nil folderID = root level).
	ListActive(ctx context.Context, ownerID string, folderID *string) ([]models.File, error)

	// UpdateName rewrites the file's name field.
	UpdateName(ctx context.Context, id, ownerID, name string) error

	// MarkDeleted sets status to DELETED. Applying it to an already-deleted
	// file is a no-op, not an error.
	MarkDeleted(ctx context.Context, id, ownerID string) error

	// MarkDeletedByFolders sets status to DELETED for every file whose
	// folder is in folderIDs and whose owner matches.
	MarkDeletedByFolders(ctx context.Context, ownerID string, folderIDs []string) error
}
