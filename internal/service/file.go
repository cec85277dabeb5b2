package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/AryanGore/LabDrop/internal/domain"
	"github.com/AryanGore/LabDrop/internal/domain/models"
	"github.com/AryanGore/LabDrop/internal/domain/repositories"
	"github.com/AryanGore/LabDrop/internal/domain/services"
)

// downloadURLTTL bounds how long a handed-out download link stays valid.
const downloadURLTTL = 15 * time.Minute

type fileService struct {
	fileRepo repositories.FileRepository
	blobs    services.BlobStore
	logger   *slog.Logger
}

// NewFileService creates a new file service
func NewFileService(
	fileRepo repositories.FileRepository,
	blobs services.BlobStore,
	logger *slog.Logger,
) services.FileService {
	return &fileService{
		fileRepo: fileRepo,
		blobs:    blobs,
		logger:   logger,
	}
}

// RenameFile renames an active file
func (s *fileService) RenameFile(ctx context.Context, ownerID, fileID, newName string) (*models.File, error) {
	newName = strings.TrimSpace(newName)
	if err := validateName(newName); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	file, err := s.fileRepo.GetByID(ctx, fileID, ownerID)
	if err != nil {
		return nil, err
	}
	if !file.IsActive() {
		return nil, fmt.Errorf("file %s: %w", fileID, domain.ErrNotFound)
	}

	// Only active files contend for a name; a DELETED file holding newName
	// does not block the rename.
	existing, err := s.fileRepo.FindActive(ctx, ownerID, file.FolderID, newName)
	if err == nil && existing.ID != file.ID {
		return nil, domain.NewConflict("file", existing.ID, newName)
	}
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check file names: %w", err)
	}

	if err := s.fileRepo.UpdateName(ctx, fileID, ownerID, newName); err != nil {
		return nil, err
	}
	file.Name = newName

	s.logger.Info("file renamed", "id", fileID, "name", newName, "owner_id", ownerID)

	return file, nil
}

// DeleteFile soft-deletes a file. Deleting an already-deleted file is not
// an error; physical bytes are reclaimed asynchronously by the blob store's
// lifecycle tooling, never here.
func (s *fileService) DeleteFile(ctx context.Context, ownerID, fileID string) error {
	file, err := s.fileRepo.GetByID(ctx, fileID, ownerID)
	if err != nil {
		return err
	}
	if !file.IsActive() {
		return nil
	}

	if err := s.fileRepo.MarkDeleted(ctx, fileID, ownerID); err != nil {
		return err
	}

	s.logger.Info("file deleted", "id", fileID, "name", file.Name, "owner_id", ownerID)

	return nil
}

// ListFiles lists active files in a folder (nil = root level)
func (s *fileService) ListFiles(ctx context.Context, ownerID string, folderID *string) ([]models.File, error) {
	return s.fileRepo.ListActive(ctx, ownerID, folderID)
}

// DownloadURL returns a short-lived URL for the file's stored bytes
func (s *fileService) DownloadURL(ctx context.Context, ownerID, fileID string) (string, error) {
	file, err := s.fileRepo.GetByID(ctx, fileID, ownerID)
	if err != nil {
		return "", err
	}
	if !file.IsActive() {
		return "", fmt.Errorf("file %s: %w", fileID, domain.ErrNotFound)
	}

	url, err := s.blobs.PresignGet(ctx, file.StorageKey, downloadURLTTL)
	if err != nil {
		return "", fmt.Errorf("presign download: %w", err)
	}

	return url, nil
}
