package services

import (
	"context"

	"github.com/AryanGore/LabDrop/internal/domain/models"
)

// FileService handles file business logic on top of the registry.
type FileService interface {
	// RenameFile renames an active file. Fails with domain.ErrConflict when
	// another active file in the same folder already carries newName.
	RenameFile(ctx context.Context, ownerID, fileID, newName string) (*models.File, error)

	// DeleteFile soft-deletes a file. Deleting an already-deleted file is
	// not an error.
	DeleteFile(ctx context.Context, ownerID, fileID string) error

	// ListFiles lists active files in a folder (nil = root level)
	ListFiles(ctx context.Context, ownerID string, folderID *string) ([]models.File, error)

	// DownloadURL returns a short-lived URL for the file's stored bytes
	DownloadURL(ctx context.Context, ownerID, fileID string) (string, error)
}
