package models

import (
	"time"
)

// Folder is a single node of the per-owner namespace tree.
//
// Path is the materialized path of the parent chain, always starting and
// ending with "/": a folder "Docs" under root has Path "/", a folder
// "Reports" under "Docs" has Path "/Docs/". Path + Name + "/" is the Path
// every direct child carries - the central invariant of the namespace.
type Folder struct {
	ID        string     `json:"id" db:"id"`
	OwnerID   string     `json:"owner_id" db:"owner_id"`
	ParentID  *string    `json:"parent_id" db:"parent_id"` // NULL = root level
	Name      string     `json:"name" db:"name"`
	Path      string     `json:"path" db:"path"`
	FileIDs   []string   `json:"file_ids,omitempty" db:"file_ids"` // denormalized, not authoritative
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

// IsDeleted reports whether the folder has been soft-deleted.
func (f *Folder) IsDeleted() bool {
	return f.DeletedAt != nil
}

// SubtreePrefix returns the materialized-path prefix every descendant of
// this folder carries as its own Path.
func (f *Folder) SubtreePrefix() string {
	return f.Path + f.Name + "/"
}
