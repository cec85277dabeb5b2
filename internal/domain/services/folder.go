package services

import (
	"context"

	"github.com/AryanGore/LabDrop/internal/domain/models"
)

// FolderService handles folder business logic, including the cascading
// rename and delete operations over a folder's subtree.
type FolderService interface {
	// CreateFolder creates a new folder under the given parent (nil = root)
	CreateFolder(ctx context.Context, req *CreateFolderRequest) (*models.Folder, error)

	// GetContents lists the non-deleted child folders and active files of a
	// folder, or of the root when folderID is nil
	GetContents(ctx context.Context, ownerID string, folderID *string) (*FolderContents, error)

	// RenameFolder renames a folder and rewrites the materialized path of
	// every descendant
	RenameFolder(ctx context.Context, ownerID, folderID, newName string) (*models.Folder, error)

	// DeleteFolder soft-deletes a folder, all descendant folders, and the
	// files they contain. Idempotent.
	DeleteFolder(ctx context.Context, ownerID, folderID string) error
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	OwnerID  string  `json:"-"`
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id,omitempty"` // nil for root
}

// FolderContents represents a folder with its children
type FolderContents struct {
	Folder  *models.Folder  `json:"folder,omitempty"` // nil for root
	Folders []models.Folder `json:"folders"`
	Files   []models.File   `json:"files"`
}
