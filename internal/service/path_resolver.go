package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/AryanGore/LabDrop/internal/config"
	"github.com/AryanGore/LabDrop/internal/domain"
	"github.com/AryanGore/LabDrop/internal/domain/models"
	"github.com/AryanGore/LabDrop/internal/domain/repositories"
	"github.com/AryanGore/LabDrop/internal/domain/services"
)

type pathResolverService struct {
	folderRepo repositories.FolderRepository
	logger     *slog.Logger
}

// NewPathResolver creates a new path resolver service
func NewPathResolver(folderRepo repositories.FolderRepository, logger *slog.Logger) services.PathResolver {
	return &pathResolverService{
		folderRepo: folderRepo,
		logger:     logger,
	}
}

// Resolve walks relativePath from startFolderID, creating missing segments.
//
// The lookup-then-create step per segment is a check-then-act sequence: two
// concurrent resolutions of the same not-yet-existing segment race, the
// repository rejects the loser with a conflict, and the loser re-reads the
// winner. That leaves at most one surviving folder per (owner, parent, name).
func (s *pathResolverService) Resolve(ctx context.Context, ownerID string, startFolderID *string, relativePath string) (*string, error) {
	segments := SplitRelativePath(relativePath)
	if len(segments) == 0 {
		return startFolderID, nil
	}

	// Establish the working materialized path of the starting folder
	workingPath := "/"
	if startFolderID != nil {
		start, err := s.folderRepo.GetByID(ctx, *startFolderID, ownerID)
		if err != nil {
			return nil, fmt.Errorf("resolve start folder: %w", err)
		}
		if start.IsDeleted() {
			return nil, fmt.Errorf("start folder %s: %w", start.ID, domain.ErrNotFound)
		}
		workingPath = start.SubtreePrefix()
	}

	currentID := startFolderID
	for _, segment := range segments {
		if len(segment) > config.MaxFolderNameLength {
			return nil, fmt.Errorf("%w: folder name %q exceeds maximum length of %d",
				domain.ErrValidation, segment, config.MaxFolderNameLength)
		}

		folder, err := s.lookupOrCreate(ctx, ownerID, currentID, segment, workingPath)
		if err != nil {
			return nil, err
		}

		currentID = &folder.ID
		workingPath = folder.SubtreePrefix()
	}

	return currentID, nil
}

// lookupOrCreate finds the non-deleted child named segment under parentID,
// creating it with the given path when absent. On a duplicate-create
// conflict the lookup is retried once: the conflicting sibling is the
// folder this resolution wanted.
func (s *pathResolverService) lookupOrCreate(ctx context.Context, ownerID string, parentID *string, segment, path string) (*models.Folder, error) {
	folder, err := s.folderRepo.FindChild(ctx, ownerID, parentID, segment)
	if err == nil {
		return folder, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("lookup folder %q: %w", segment, err)
	}

	created := &models.Folder{
		OwnerID:  ownerID,
		ParentID: parentID,
		Name:     segment,
		Path:     path,
	}
	err = s.folderRepo.Create(ctx, created)
	if err == nil {
		s.logger.Debug("folder created during resolution",
			"id", created.ID, "name", segment, "path", path, "owner_id", ownerID)
		return created, nil
	}
	if !errors.Is(err, domain.ErrConflict) {
		return nil, fmt.Errorf("create folder %q: %w", segment, err)
	}

	// Lost the creation race - the sibling that appeared is our folder
	folder, err = s.folderRepo.FindChild(ctx, ownerID, parentID, segment)
	if err != nil {
		return nil, fmt.Errorf("re-lookup folder %q after conflict: %w", segment, err)
	}
	return folder, nil
}
