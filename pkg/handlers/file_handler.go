package handlers

import (
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/sandip79g/DKN-Backend/pkg/storage"
)

// FileHandler serves stored artifact files. Downloads are public; knowing
// the owner id and filename is the only requirement.
type FileHandler struct {
	files  *storage.FileStore
	logger *zap.Logger
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(files *storage.FileStore, logger *zap.Logger) *FileHandler {
	return &FileHandler{
		files:  files,
		logger: logger.Named("file_handler"),
	}
}

// RegisterRoutes registers the file handler's routes on the given mux.
func (h *FileHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/files/{user_id}/{file_model_type}/{filename}", h.Download)
}

// Download handles GET /api/files/{user_id}/{file_model_type}/{filename}
// requests by streaming the stored file from disk.
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ParseUserID(w, r, h.logger)
	if !ok {
		return
	}

	kind := r.PathValue("file_model_type")
	filename := r.PathValue("filename")

	path, err := h.files.Lookup(ownerID, kind, filename)
	if err != nil {
		if os.IsNotExist(err) {
			h.writeError(w, http.StatusNotFound, "not_found", "File not found")
			return
		}
		h.logger.Error("Failed to resolve stored file", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal_error", "Internal server error")
		return
	}

	http.ServeFile(w, r, path)
}

func (h *FileHandler) writeError(w http.ResponseWriter, statusCode int, errorCode, message string) {
	if err := ErrorResponse(w, statusCode, errorCode, message); err != nil {
		h.logger.Error("Failed to write error response", zap.Error(err))
	}
}
