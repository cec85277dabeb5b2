package services

import (
	"context"
	"io"

	"github.com/AryanGore/LabDrop/internal/domain/models"
)

// UploadService processes multi-file upload batches ("smart drop"): each
// item carries a relative path whose directory part is resolved - lazily
// creating folders - before the file record is registered.
type UploadService interface {
	// Upload stores and registers a batch of files under the target folder
	// (nil = root). Per-item failures are recorded in the result and the
	// batch continues.
	Upload(ctx context.Context, ownerID string, folderID *string, items []UploadItem) (*UploadResult, error)
}

// UploadItem is one file of an upload batch. RelativePath is the
// slash-delimited path the client dropped the file under, including the
// file name ("folderA/subfolderB/file1.txt"); empty means the batch target
// folder itself.
type UploadItem struct {
	Name         string
	RelativePath string
	ContentType  string
	SizeBytes    int64
	Content      io.Reader
}

// UploadError describes one failed item of a batch
type UploadError struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// UploadSummary aggregates batch counters
type UploadSummary struct {
	TotalFiles int `json:"total_files"`
	Uploaded   int `json:"uploaded"`
	Failed     int `json:"failed"`
}

// UploadResult is the outcome of a smart-drop batch
type UploadResult struct {
	Summary UploadSummary `json:"summary"`
	Files   []models.File `json:"files"`
	Errors  []UploadError `json:"errors"`
}
