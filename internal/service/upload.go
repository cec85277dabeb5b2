package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/AryanGore/LabDrop/internal/config"
	"github.com/AryanGore/LabDrop/internal/domain"
	"github.com/AryanGore/LabDrop/internal/domain/models"
	"github.com/AryanGore/LabDrop/internal/domain/repositories"
	"github.com/AryanGore/LabDrop/internal/domain/services"
	"github.com/AryanGore/LabDrop/internal/uploadpolicy"
)

type uploadService struct {
	folderRepo repositories.FolderRepository
	fileRepo   repositories.FileRepository
	resolver   services.PathResolver
	blobs      services.BlobStore
	txManager  repositories.TransactionManager
	policy     *uploadpolicy.Registry
	logger     *slog.Logger
}

// NewUploadService creates a new upload service
func NewUploadService(
	folderRepo repositories.FolderRepository,
	fileRepo repositories.FileRepository,
	resolver services.PathResolver,
	blobs services.BlobStore,
	txManager repositories.TransactionManager,
	policy *uploadpolicy.Registry,
	logger *slog.Logger,
) services.UploadService {
	return &uploadService{
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
		resolver:   resolver,
		blobs:      blobs,
		txManager:  txManager,
		policy:     policy,
		logger:     logger,
	}
}

// Upload stores and registers a batch of files under the target folder.
//
// Items are processed sequentially: files dropped under a shared directory
// prefix resolve through the same lazily-created folder chain, and walking
// them in order keeps sibling creation races out of a single batch. A
// per-item failure is recorded in the result and the batch continues -
// mirroring how a desktop client expects a large drop to behave.
func (s *uploadService) Upload(ctx context.Context, ownerID string, folderID *string, items []services.UploadItem) (*services.UploadResult, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no files uploaded", domain.ErrValidation)
	}
	if max := s.policy.MaxBatchFiles(); len(items) > max {
		return nil, fmt.Errorf("%w: batch of %d files exceeds the limit of %d", domain.ErrValidation, len(items), max)
	}

	// Validate the explicit target folder before touching anything
	if folderID != nil && *folderID == "" {
		folderID = nil
	}
	if folderID != nil {
		target, err := s.folderRepo.GetByID(ctx, *folderID, ownerID)
		if err != nil {
			return nil, err
		}
		if target.IsDeleted() {
			return nil, fmt.Errorf("target folder %s: %w", target.ID, domain.ErrNotFound)
		}
	}

	result := &services.UploadResult{
		Summary: services.UploadSummary{TotalFiles: len(items)},
		Files:   []models.File{},
		Errors:  []services.UploadError{},
	}

	for _, item := range items {
		file, err := s.processItem(ctx, ownerID, folderID, item)
		if err != nil {
			result.Summary.Failed++
			result.Errors = append(result.Errors, services.UploadError{
				File:  itemLabel(item),
				Error: err.Error(),
			})
			s.logger.Warn("upload item failed",
				"file", itemLabel(item), "owner_id", ownerID, "error", err)
			continue
		}
		result.Summary.Uploaded++
		result.Files = append(result.Files, *file)
	}

	s.logger.Info("upload batch processed",
		"owner_id", ownerID,
		"total", result.Summary.TotalFiles,
		"uploaded", result.Summary.Uploaded,
		"failed", result.Summary.Failed,
	)

	return result, nil
}

// processItem resolves the item's directory chain, stores the bytes, and
// registers the file record under the resolved folder.
func (s *uploadService) processItem(ctx context.Context, ownerID string, folderID *string, item services.UploadItem) (*models.File, error) {
	if len(item.RelativePath) > config.MaxRelativePathLength {
		return nil, fmt.Errorf("relative path exceeds maximum length of %d", config.MaxRelativePathLength)
	}

	name, dirPath := splitDropPath(item)
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := s.policy.CheckFileSize(item.SizeBytes); err != nil {
		return nil, err
	}

	targetID, err := s.resolver.Resolve(ctx, ownerID, folderID, dirPath)
	if err != nil {
		return nil, fmt.Errorf("resolve directory %q: %w", dirPath, err)
	}

	file := &models.File{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		FolderID:    targetID,
		Name:        name,
		SizeBytes:   item.SizeBytes,
		ContentType: s.policy.ResolveContentType(name, item.ContentType),
		Status:      models.FileStatusActive,
	}
	file.StorageKey = fmt.Sprintf("%s/%s/%s", ownerID, file.ID, name)

	if err := s.blobs.Put(ctx, file.StorageKey, file.ContentType, item.Content); err != nil {
		return nil, fmt.Errorf("store bytes: %w", err)
	}

	// Record creation and the denormalized folder link commit together
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.fileRepo.Create(txCtx, file); err != nil {
			return err
		}
		if targetID != nil {
			return s.folderRepo.AppendFileID(txCtx, *targetID, ownerID, file.ID)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("register file: %w", err)
	}

	return file, nil
}

// splitDropPath derives the file name and the directory part of an item's
// relative path. The explicit item name wins over the path's last segment,
// matching how browsers send the original file name separately from the
// dropped path.
func splitDropPath(item services.UploadItem) (name, dirPath string) {
	segments := SplitRelativePath(item.RelativePath)

	name = strings.TrimSpace(item.Name)
	if name == "" && len(segments) > 0 {
		name = segments[len(segments)-1]
	}

	if len(segments) > 1 {
		dirPath = strings.Join(segments[:len(segments)-1], "/")
	}
	return name, dirPath
}

func itemLabel(item services.UploadItem) string {
	if item.RelativePath != "" {
		return item.RelativePath
	}
	return item.Name
}
