package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AryanGore/LabDrop/internal/domain"
	"github.com/AryanGore/LabDrop/internal/domain/models"
	"github.com/AryanGore/LabDrop/internal/domain/repositories"
)

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *RepositoryConfig) repositories.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const folderColumns = "id, owner_id, parent_id, name, path, file_ids, created_at, updated_at, deleted_at"

func scanFolder(row interface{ Scan(...any) error }, folder *models.Folder) error {
	return row.Scan(
		&folder.ID,
		&folder.OwnerID,
		&folder.ParentID,
		&folder.Name,
		&folder.Path,
		&folder.FileIDs,
		&folder.CreatedAt,
		&folder.UpdatedAt,
		&folder.DeletedAt,
	)
}

// Create inserts a new folder record.
// The partial unique index on (owner_id, parent_id, name) WHERE deleted_at
// IS NULL is the authoritative duplicate guard; an application-level check
// runs first for a friendlier conflict error.
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	existing, err := r.FindChild(ctx, folder.OwnerID, folder.ParentID, folder.Name)
	if err == nil {
		return domain.NewConflict("folder", existing.ID, folder.Name)
	}

	if folder.ID == "" {
		folder.ID = uuid.NewString()
	}
	now := time.Now()
	if folder.CreatedAt.IsZero() {
		folder.CreatedAt = now
	}
	folder.UpdatedAt = now

	query := fmt.Sprintf(`
		INSERT INTO %s (id, owner_id, parent_id, name, path, file_ids, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, '{}', $6, $7)
	`, r.tables.Folders)

	_, err = GetExecutor(ctx, r.pool).Exec(ctx, query,
		folder.ID,
		folder.OwnerID,
		folder.ParentID,
		folder.Name,
		folder.Path,
		folder.CreatedAt,
		folder.UpdatedAt,
	)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("folder %q: %w", folder.Name, domain.ErrConflict)
		}
		return fmt.Errorf("create folder: %w", err)
	}

	return nil
}

// GetByID retrieves a folder by ID regardless of deletion state
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id, ownerID string) (*models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND owner_id = $2
	`, folderColumns, r.tables.Folders)

	var folder models.Folder
	err := scanFolder(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id, ownerID), &folder)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}

	return &folder, nil
}

// FindChild finds the non-deleted child with the given name under (owner, parent)
func (r *PostgresFolderRepository) FindChild(ctx context.Context, ownerID string, parentID *string, name string) (*models.Folder, error) {
	var query string
	var args []interface{}

	if parentID == nil {
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE owner_id = $1 AND name = $2 AND parent_id IS NULL AND deleted_at IS NULL
		`, folderColumns, r.tables.Folders)
		args = append(args, ownerID, name)
	} else {
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE owner_id = $1 AND name = $2 AND parent_id = $3 AND deleted_at IS NULL
		`, folderColumns, r.tables.Folders)
		args = append(args, ownerID, name, *parentID)
	}

	var folder models.Folder
	err := scanFolder(GetExecutor(ctx, r.pool).QueryRow(ctx, query, args...), &folder)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %q: %w", name, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("find child folder: %w", err)
	}

	return &folder, nil
}

// ListChildren lists non-deleted immediate child folders
func (r *PostgresFolderRepository) ListChildren(ctx context.Context, ownerID string, parentID *string) ([]models.Folder, error) {
	var query string
	var args []interface{}

	if parentID == nil {
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE owner_id = $1 AND parent_id IS NULL AND deleted_at IS NULL
			ORDER BY name ASC
		`, folderColumns, r.tables.Folders)
		args = append(args, ownerID)
	} else {
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE owner_id = $1 AND parent_id = $2 AND deleted_at IS NULL
			ORDER BY name ASC
		`, folderColumns, r.tables.Folders)
		args = append(args, ownerID, *parentID)
	}

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list folder children: %w", err)
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		var folder models.Folder
		if err := scanFolder(rows, &folder); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	return folders, nil
}

// FindDescendants returns every folder, deleted or not, whose path starts
// with pathPrefix. left() comparison instead of LIKE keeps folder names
// containing % or _ from acting as wildcards.
func (r *PostgresFolderRepository) FindDescendants(ctx context.Context, ownerID, pathPrefix string) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE owner_id = $1 AND left(path, char_length($2)) = $2
		ORDER BY path ASC
	`, folderColumns, r.tables.Folders)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, ownerID, pathPrefix)
	if err != nil {
		return nil, fmt.Errorf("find descendants: %w", err)
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		var folder models.Folder
		if err := scanFolder(rows, &folder); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	return folders, nil
}

// UpdateName rewrites only the folder's own name field
func (r *PostgresFolderRepository) UpdateName(ctx context.Context, id, ownerID, name string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $3, updated_at = $4
		WHERE id = $1 AND owner_id = $2
	`, r.tables.Folders)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id, ownerID, name, time.Now())
	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("folder %q: %w", name, domain.ErrConflict)
		}
		return fmt.Errorf("update folder name: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// RewritePathPrefix replaces the leading oldPrefix of the row's path with
// newPrefix. The substr runs against the stored value inside the UPDATE
// itself, so the rewrite is always relative to the row's current path even
// when another cascade touched it after the caller's snapshot.
func (r *PostgresFolderRepository) RewritePathPrefix(ctx context.Context, id, ownerID, oldPrefix, newPrefix string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET path = $4 || substr(path, char_length($3) + 1), updated_at = $5
		WHERE id = $1 AND owner_id = $2 AND left(path, char_length($3)) = $3
	`, r.tables.Folders)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id, ownerID, oldPrefix, newPrefix, time.Now())
	if err != nil {
		return fmt.Errorf("rewrite folder path: %w", err)
	}

	return nil
}

// MarkDeleted soft-deletes the given folders, keeping the original deletion
// timestamp on rows that were already deleted
func (r *PostgresFolderRepository) MarkDeleted(ctx context.Context, ownerID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET deleted_at = COALESCE(deleted_at, $3), updated_at = $3
		WHERE owner_id = $1 AND id = ANY($2)
	`, r.tables.Folders)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query, ownerID, ids, time.Now())
	if err != nil {
		return fmt.Errorf("mark folders deleted: %w", err)
	}

	return nil
}

// AppendFileID links a file id onto the folder's denormalized file list
func (r *PostgresFolderRepository) AppendFileID(ctx context.Context, folderID, ownerID, fileID string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET file_ids = array_append(file_ids, $3), updated_at = $4
		WHERE id = $1 AND owner_id = $2 AND NOT ($3 = ANY(file_ids))
	`, r.tables.Folders)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query, folderID, ownerID, fileID, time.Now())
	if err != nil {
		return fmt.Errorf("append file id: %w", err)
	}

	return nil
}

// RemoveFileID unlinks a file id from the folder's denormalized file list
func (r *PostgresFolderRepository) RemoveFileID(ctx context.Context, folderID, ownerID, fileID string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET file_ids = array_remove(file_ids, $3), updated_at = $4
		WHERE id = $1 AND owner_id = $2
	`, r.tables.Folders)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query, folderID, ownerID, fileID, time.Now())
	if err != nil {
		return fmt.Errorf("remove file id: %w", err)
	}

	return nil
}
