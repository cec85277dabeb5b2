package handler

import (
	"log/slog"
	"net/http"

	"github.com/AryanGore/LabDrop/internal/domain/services"
	"github.com/AryanGore/LabDrop/internal/httputil"
	"github.com/AryanGore/LabDrop/internal/uploadpolicy"
)

// multipartMemoryLimit is the in-memory threshold before parts spill to disk
const multipartMemoryLimit = 32 << 20 // 32MB

// UploadHandler handles multi-file upload requests
type UploadHandler struct {
	uploadService services.UploadService
	policy        *uploadpolicy.Registry
	logger        *slog.Logger
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadService services.UploadService, policy *uploadpolicy.Registry, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
		policy:        policy,
		logger:        logger,
	}
}

// Upload accepts a multipart batch of files and registers them under the
// target folder, lazily creating the folder chains named by the parallel
// "paths" values.
//
// POST /api/uploads
// Form fields:
//
//	files     - one part per file
//	paths     - optional relative path per file, same order as files
//	folder_id - optional target folder, defaults to the root level
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	// Cap the whole request at the policy's worst case batch
	maxRequest := int64(h.policy.MaxBatchFiles())*h.policy.MaxFileSizeBytes() + multipartMemoryLimit
	r.Body = http.MaxBytesReader(w, r.Body, maxRequest)

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid multipart request")
		return
	}
	defer r.MultipartForm.RemoveAll()

	fileHeaders := r.MultipartForm.File["files"]
	if len(fileHeaders) == 0 {
		httputil.RespondError(w, http.StatusBadRequest, "No files uploaded")
		return
	}

	paths := r.MultipartForm.Value["paths"]
	folderID := optionalID(r.FormValue("folder_id"))

	items := make([]services.UploadItem, 0, len(fileHeaders))
	for i, fh := range fileHeaders {
		part, err := fh.Open()
		if err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "Unreadable file part: "+fh.Filename)
			return
		}
		defer part.Close()

		item := services.UploadItem{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			SizeBytes:   fh.Size,
			Content:     part,
		}
		if i < len(paths) {
			item.RelativePath = paths[i]
		}
		items = append(items, item)
	}

	result, err := h.uploadService.Upload(r.Context(), userID, folderID, items)
	if err != nil {
		handleError(w, err)
		return
	}

	status := http.StatusCreated
	if result.Summary.Uploaded == 0 {
		// Nothing made it through, surface the batch as a client error
		status = http.StatusBadRequest
	}
	httputil.RespondJSON(w, status, result)
}
