package models

import (
	"time"
)

// FileStatus is the lifecycle state of a file record.
type FileStatus string

const (
	FileStatusActive  FileStatus = "ACTIVE"
	FileStatusDeleted FileStatus = "DELETED"
)

// File is a registered upload. StorageKey is an opaque reference into the
// blob store; the registry never touches the bytes themselves.
type File struct {
	ID          string     `json:"id" db:"id"`
	OwnerID     string     `json:"owner_id" db:"owner_id"`
	FolderID    *string    `json:"folder_id" db:"folder_id"` // NULL = root level
	Name        string     `json:"name" db:"name"`
	SizeBytes   int64      `json:"size_bytes" db:"size_bytes"`
	ContentType string     `json:"content_type" db:"content_type"`
	StorageKey  string     `json:"-" db:"storage_key"`
	Status      FileStatus `json:"status" db:"status"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// IsActive reports whether the file has not been soft-deleted.
func (f *File) IsActive() bool {
	return f.Status == FileStatusActive
}
