package handler

import (
	"log/slog"
	"net/http"

	"github.com/AryanGore/LabDrop/internal/domain/services"
	"github.com/AryanGore/LabDrop/internal/httputil"
)

// FileHandler handles file HTTP requests
type FileHandler struct {
	fileService services.FileService
	logger      *slog.Logger
}

// NewFileHandler creates a new file handler
func NewFileHandler(fileService services.FileService, logger *slog.Logger) *FileHandler {
	return &FileHandler{
		fileService: fileService,
		logger:      logger,
	}
}

// RenameFile renames an active file
// PATCH /api/files/{id}
func (h *FileHandler) RenameFile(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "File ID is required")
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	file, err := h.fileService.RenameFile(r.Context(), userID, id, req.Name)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, file)
}

// DeleteFile soft-deletes a file
// DELETE /api/files/{id}
func (h *FileHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "File ID is required")
		return
	}

	if err := h.fileService.DeleteFile(r.Context(), userID, id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListFiles lists active files, optionally scoped to a folder
// GET /api/files?folder_id=...
func (h *FileHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)
	folderID := optionalID(r.URL.Query().Get("folder_id"))

	files, err := h.fileService.ListFiles(r.Context(), userID, folderID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"files": files,
	})
}

// DownloadURL returns a short-lived presigned URL for the file's bytes
// GET /api/files/{id}/download
func (h *FileHandler) DownloadURL(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "File ID is required")
		return
	}

	url, err := h.fileService.DownloadURL(r.Context(), userID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{
		"url": url,
	})
}
