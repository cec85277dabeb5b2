package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/AryanGore/LabDrop/internal/config"
	"github.com/AryanGore/LabDrop/internal/domain"
	"github.com/AryanGore/LabDrop/internal/domain/models"
	"github.com/AryanGore/LabDrop/internal/domain/repositories"
	"github.com/AryanGore/LabDrop/internal/domain/services"
)

var folderNamePattern = regexp.MustCompile(`^[^/]+$`)

type folderService struct {
	folderRepo repositories.FolderRepository
	fileRepo   repositories.FileRepository
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo repositories.FolderRepository,
	fileRepo repositories.FileRepository,
	logger *slog.Logger,
) services.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
		logger:     logger,
	}
}

// CreateFolder creates a new folder under the given parent (nil = root)
func (s *folderService) CreateFolder(ctx context.Context, req *services.CreateFolderRequest) (*models.Folder, error) {
	// Normalize empty string to nil for root-level folders
	if req.ParentID != nil && *req.ParentID == "" {
		req.ParentID = nil
	}
	req.Name = strings.TrimSpace(req.Name)

	if err := validateName(req.Name); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// The new folder's materialized path is the parent's subtree prefix
	path := "/"
	if req.ParentID != nil {
		parent, err := s.folderRepo.GetByID(ctx, *req.ParentID, req.OwnerID)
		if err != nil {
			return nil, err
		}
		if parent.IsDeleted() {
			return nil, fmt.Errorf("parent folder %s: %w", parent.ID, domain.ErrNotFound)
		}
		path = parent.SubtreePrefix()
	}

	folder := &models.Folder{
		OwnerID:  req.OwnerID,
		ParentID: req.ParentID,
		Name:     req.Name,
		Path:     path,
	}

	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"owner_id", folder.OwnerID,
		"parent_id", folder.ParentID,
		"path", folder.Path,
	)

	return folder, nil
}

// GetContents lists the non-deleted child folders and active files of a
// folder, or of the root when folderID is nil
func (s *folderService) GetContents(ctx context.Context, ownerID string, folderID *string) (*services.FolderContents, error) {
	var folder *models.Folder

	if folderID != nil && *folderID != "" {
		var err error
		folder, err = s.folderRepo.GetByID(ctx, *folderID, ownerID)
		if err != nil {
			return nil, err
		}
		if folder.IsDeleted() {
			return nil, fmt.Errorf("folder %s: %w", folder.ID, domain.ErrNotFound)
		}
	} else {
		folderID = nil
	}

	folders, err := s.folderRepo.ListChildren(ctx, ownerID, folderID)
	if err != nil {
		return nil, fmt.Errorf("list child folders: %w", err)
	}

	files, err := s.fileRepo.ListActive(ctx, ownerID, folderID)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}

	return &services.FolderContents{
		Folder:  folder,
		Folders: folders,
		Files:   files,
	}, nil
}

// RenameFolder renames a folder and rewrites the materialized path of every
// descendant.
//
// The name update and the descendant rewrites target disjoint fields (the
// folder's own name vs. descendants' paths), so their relative order does
// not affect final correctness. The descendant pass is not atomic across
// the subtree: a transient failure leaves already-rewritten records in
// place and the caller may safely re-invoke, since each per-record rewrite
// is keyed by id and computed against the record's current stored path.
func (s *folderService) RenameFolder(ctx context.Context, ownerID, folderID, newName string) (*models.Folder, error) {
	newName = strings.TrimSpace(newName)
	if err := validateName(newName); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	folder, err := s.folderRepo.GetByID(ctx, folderID, ownerID)
	if err != nil {
		return nil, err
	}
	if folder.IsDeleted() {
		return nil, fmt.Errorf("folder %s: %w", folder.ID, domain.ErrNotFound)
	}

	// Conflict check is scoped to direct siblings only; folders elsewhere
	// in the subtree may legitimately carry the same name.
	sibling, err := s.folderRepo.FindChild(ctx, ownerID, folder.ParentID, newName)
	if err == nil && sibling.ID != folder.ID {
		return nil, domain.NewConflict("folder", sibling.ID, newName)
	}
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check sibling names: %w", err)
	}

	oldPrefix := ChildPath(folder.Path, folder.Name)
	newPrefix := ChildPath(folder.Path, newName)

	if err := s.folderRepo.UpdateName(ctx, folder.ID, ownerID, newName); err != nil {
		return nil, err
	}
	folder.Name = newName

	if oldPrefix == newPrefix {
		return folder, nil
	}

	descendants, err := s.folderRepo.FindDescendants(ctx, ownerID, oldPrefix)
	if err != nil {
		return nil, fmt.Errorf("find descendants: %w", err)
	}

	for _, desc := range descendants {
		if err := s.folderRepo.RewritePathPrefix(ctx, desc.ID, ownerID, oldPrefix, newPrefix); err != nil {
			return nil, fmt.Errorf("rewrite path of folder %q: %w", desc.Name, err)
		}
	}

	s.logger.Info("folder renamed",
		"id", folder.ID,
		"name", newName,
		"owner_id", ownerID,
		"descendants", len(descendants),
	)

	return folder, nil
}

// DeleteFolder soft-deletes a folder, all descendant folders, and the files
// they contain. Re-invoking on an already-deleted folder re-applies the
// same flags with no error and no duplicate side effects.
func (s *folderService) DeleteFolder(ctx context.Context, ownerID, folderID string) error {
	folder, err := s.folderRepo.GetByID(ctx, folderID, ownerID)
	if err != nil {
		return err
	}

	prefix := folder.SubtreePrefix()

	// Deleted descendants are included so a repeated delete touches the
	// exact same set.
	descendants, err := s.folderRepo.FindDescendants(ctx, ownerID, prefix)
	if err != nil {
		return fmt.Errorf("find descendants: %w", err)
	}

	ids := make([]string, 0, len(descendants)+1)
	ids = append(ids, folder.ID)
	for _, desc := range descendants {
		ids = append(ids, desc.ID)
	}

	if err := s.folderRepo.MarkDeleted(ctx, ownerID, ids); err != nil {
		return err
	}

	if err := s.fileRepo.MarkDeletedByFolders(ctx, ownerID, ids); err != nil {
		return err
	}

	s.logger.Info("folder deleted",
		"id", folder.ID,
		"name", folder.Name,
		"owner_id", ownerID,
		"subtree_size", len(ids),
	)

	return nil
}

// validateName checks a folder or file name: non-empty, bounded, no slashes
func validateName(name string) error {
	return validation.Validate(name,
		validation.Required.Error("name is required"),
		validation.Length(1, config.MaxFolderNameLength),
		validation.Match(folderNamePattern).Error("name cannot contain slashes"),
	)
}
