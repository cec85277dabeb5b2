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

// PostgresFileRepository implements the FileRepository interface
type PostgresFileRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewFileRepository creates a new file repository
func NewFileRepository(config *RepositoryConfig) repositories.FileRepository {
	return &PostgresFileRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const fileColumns = "id, owner_id, folder_id, name, size_bytes, content_type, storage_key, status, created_at, updated_at"

func scanFile(row interface{ Scan(...any) error }, file *models.File) error {
	return row.Scan(
		&file.ID,
		&file.OwnerID,
		&file.FolderID,
		&file.Name,
		&file.SizeBytes,
		&file.ContentType,
		&file.StorageKey,
		&file.Status,
		&file.CreatedAt,
		&file.UpdatedAt,
	)
}

// Create inserts a new file record
func (r *PostgresFileRepository) Create(ctx context.Context, file *models.File) error {
	if file.ID == "" {
		file.ID = uuid.NewString()
	}
	if file.Status == "" {
		file.Status = models.FileStatusActive
	}
	now := time.Now()
	if file.CreatedAt.IsZero() {
		file.CreatedAt = now
	}
	file.UpdatedAt = now

	query := fmt.Sprintf(`
		INSERT INTO %s (id, owner_id, folder_id, name, size_bytes, content_type, storage_key, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, r.tables.Files)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		file.ID,
		file.OwnerID,
		file.FolderID,
		file.Name,
		file.SizeBytes,
		file.ContentType,
		file.StorageKey,
		file.Status,
		file.CreatedAt,
		file.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}

	return nil
}

// GetByID retrieves a file by ID regardless of status
func (r *PostgresFileRepository) GetByID(ctx context.Context, id, ownerID string) (*models.File, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND owner_id = $2
	`, fileColumns, r.tables.Files)

	var file models.File
	err := scanFile(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id, ownerID), &file)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get file: %w", err)
	}

	return &file, nil
}

// FindActive finds the ACTIVE file with the given name in (owner, folder)
func (r *PostgresFileRepository) FindActive(ctx context.Context, ownerID string, folderID *string, name string) (*models.File, error) {
	var query string
	var args []interface{}

	if folderID == nil {
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE owner_id = $1 AND name = $2 AND folder_id IS NULL AND status = $3
		`, fileColumns, r.tables.Files)
		args = append(args, ownerID, name, models.FileStatusActive)
	} else {
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE owner_id = $1 AND name = $2 AND folder_id = $3 AND status = $4
		`, fileColumns, r.tables.Files)
		args = append(args, ownerID, name, *folderID, models.FileStatusActive)
	}

	var file models.File
	err := scanFile(GetExecutor(ctx, r.pool).QueryRow(ctx, query, args...), &file)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("file %q: %w", name, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("find active file: %w", err)
	}

	return &file, nil
}

// ListActive lists ACTIVE files in a folder (nil folderID = root level)
func (r *PostgresFileRepository) ListActive(ctx context.Context, ownerID string, folderID *string) ([]models.File, error) {
	var query string
	var args []interface{}

	if folderID == nil {
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE owner_id = $1 AND folder_id IS NULL AND status = $2
			ORDER BY name ASC
		`, fileColumns, r.tables.Files)
		args = append(args, ownerID, models.FileStatusActive)
	} else {
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE owner_id = $1 AND folder_id = $2 AND status = $3
			ORDER BY name ASC
		`, fileColumns, r.tables.Files)
		args = append(args, ownerID, *folderID, models.FileStatusActive)
	}

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list active files: %w", err)
	}
	defer rows.Close()

	var files []models.File
	for rows.Next() {
		var file models.File
		if err := scanFile(rows, &file); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, file)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate files: %w", err)
	}

	return files, nil
}

// UpdateName rewrites the file's name field
func (r *PostgresFileRepository) UpdateName(ctx context.Context, id, ownerID, name string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $3, updated_at = $4
		WHERE id = $1 AND owner_id = $2
	`, r.tables.Files)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id, ownerID, name, time.Now())
	if err != nil {
		return fmt.Errorf("update file name: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// MarkDeleted sets status to DELETED; a no-op on already-deleted files
func (r *PostgresFileRepository) MarkDeleted(ctx context.Context, id, ownerID string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET status = $3, updated_at = $4
		WHERE id = $1 AND owner_id = $2
	`, r.tables.Files)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id, ownerID, models.FileStatusDeleted, time.Now())
	if err != nil {
		return fmt.Errorf("mark file deleted: %w", err)
	}

	return nil
}

// MarkDeletedByFolders sets status to DELETED for every owned file whose
// folder is in folderIDs
func (r *PostgresFileRepository) MarkDeletedByFolders(ctx context.Context, ownerID string, folderIDs []string) error {
	if len(folderIDs) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET status = $3, updated_at = $4
		WHERE owner_id = $1 AND folder_id = ANY($2)
	`, r.tables.Files)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query, ownerID, folderIDs, models.FileStatusDeleted, time.Now())
	if err != nil {
		return fmt.Errorf("mark files deleted by folder: %w", err)
	}

	return nil
}
