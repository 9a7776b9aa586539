package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/sandip79g/DKN-Backend/pkg/auth"
	"github.com/sandip79g/DKN-Backend/pkg/services"
)

// maxUploadBytes caps the in-memory portion of multipart parsing; larger
// uploads spill to temp files.
const maxUploadBytes = 32 << 20

// ArtifactHandler handles artifact CRUD, publishing, review requests and tags.
type ArtifactHandler struct {
	artifacts services.ArtifactService
	logger    *zap.Logger
}

// NewArtifactHandler creates a new ArtifactHandler.
func NewArtifactHandler(artifacts services.ArtifactService, logger *zap.Logger) *ArtifactHandler {
	return &ArtifactHandler{
		artifacts: artifacts,
		logger:    logger.Named("artifact_handler"),
	}
}

// RegisterRoutes registers the artifact handler's routes on the given mux.
// Listings of published artifacts, single artifact reads and tag listings are
// public; everything else requires authentication.
func (h *ArtifactHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/artifacts", h.ListPublished)
	mux.HandleFunc("GET /api/artifacts/my-artifacts", authMiddleware.RequireAuth(h.ListMine))
	mux.HandleFunc("GET /api/artifacts/{id}", h.Get)
	mux.HandleFunc("POST /api/create-artifact", authMiddleware.RequireAuth(h.Create))
	mux.HandleFunc("PUT /api/artifacts/{id}", authMiddleware.RequireAuth(h.Update))
	mux.HandleFunc("DELETE /api/artifacts/{id}", authMiddleware.RequireAuth(h.Delete))
	mux.HandleFunc("POST /api/publish-artifact/{id}", authMiddleware.RequireAuth(h.Publish))
	mux.HandleFunc("POST /api/request-review/{id}", authMiddleware.RequireAuth(h.RequestReview))
	mux.HandleFunc("GET /api/artifacts/{id}/tags", h.ListTags)
	mux.HandleFunc("POST /api/artifacts/{id}/tags", authMiddleware.RequireAuth(h.AddTag))
	mux.HandleFunc("DELETE /api/artifacts/{id}/tags/{tag_id}", authMiddleware.RequireAuth(h.RemoveTag))
}

// parseArtifactForm reads the multipart fields shared by create and update.
// The file part is optional; http.ErrMissingFile is not an error.
func (h *ArtifactHandler) parseArtifactForm(w http.ResponseWriter, r *http.Request) (services.ArtifactInput, bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "Invalid multipart form")
		return services.ArtifactInput{}, false
	}

	input := services.ArtifactInput{
		Title:   r.FormValue("title"),
		Summary: r.FormValue("summary"),
		Content: r.FormValue("content"),
		Status:  r.FormValue("status"),
	}
	if input.Title == "" {
		h.writeError(w, http.StatusBadRequest, "missing_fields", "Title is required")
		return services.ArtifactInput{}, false
	}

	file, header, err := r.FormFile("file")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "Invalid file upload")
		return services.ArtifactInput{}, false
	}
	if err == nil {
		input.File = &services.Upload{
			Filename: header.Filename,
			Content:  file,
		}
	}

	return input, true
}

// ListPublished handles GET /api/artifacts requests. Only published
// artifacts are returned, regardless of caller.
func (h *ArtifactHandler) ListPublished(w http.ResponseWriter, r *http.Request) {
	artifacts, err := h.artifacts.ListPublished(r.Context())
	if err != nil {
		ServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, artifacts); err != nil {
		h.logger.Error("Failed to encode artifact list", zap.Error(err))
	}
}

// ListMine handles GET /api/artifacts/my-artifacts requests.
func (h *ArtifactHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.GetUser(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	artifacts, err := h.artifacts.ListMine(r.Context(), user)
	if err != nil {
		ServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, artifacts); err != nil {
		h.logger.Error("Failed to encode artifact list", zap.Error(err))
	}
}

// Get handles GET /api/artifacts/{id} requests. The review status, when one
// exists, is attached to the response.
func (h *ArtifactHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseArtifactID(w, r, h.logger)
	if !ok {
		return
	}

	artifact, err := h.artifacts.Get(r.Context(), id)
	if err != nil {
		ServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, artifact); err != nil {
		h.logger.Error("Failed to encode artifact", zap.Error(err))
	}
}

// Create handles POST /api/create-artifact requests (multipart form).
func (h *ArtifactHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.GetUser(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	input, ok := h.parseArtifactForm(w, r)
	if !ok {
		return
	}

	artifact, err := h.artifacts.Create(r.Context(), user, input)
	if err != nil {
		ServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusCreated, artifact); err != nil {
		h.logger.Error("Failed to encode artifact", zap.Error(err))
	}
}

// Update handles PUT /api/artifacts/{id} requests (multipart form).
// Owner-only full overwrite of the writable fields.
func (h *ArtifactHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.GetUser(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	id, ok := ParseArtifactID(w, r, h.logger)
	if !ok {
		return
	}

	input, ok := h.parseArtifactForm(w, r)
	if !ok {
		return
	}

	artifact, err := h.artifacts.Update(r.Context(), user, id, input)
	if err != nil {
		ServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, artifact); err != nil {
		h.logger.Error("Failed to encode artifact", zap.Error(err))
	}
}

// Delete handles DELETE /api/artifacts/{id} requests. Owner-only; the
// review, ratings, tags and stored file go with the artifact.
func (h *ArtifactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.GetUser(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	id, ok := ParseArtifactID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.artifacts.Delete(r.Context(), user, id); err != nil {
		ServiceError(w, h.logger, err)
		return
	}

	response := ApiResponse{Success: true, Message: "Artifact deleted"}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to encode delete response", zap.Error(err))
	}
}

// Publish handles POST /api/publish-artifact/{id} requests. Owner-only and
// independent of any review outcome.
func (h *ArtifactHandler) Publish(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.GetUser(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	id, ok := ParseArtifactID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.artifacts.Publish(r.Context(), user, id); err != nil {
		ServiceError(w, h.logger, err)
		return
	}

	response := ApiResponse{Success: true, Message: "Artifact published"}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to encode publish response", zap.Error(err))
	}
}

// RequestReview handles POST /api/request-review/{id} requests. Owner-only;
// each artifact gets at most one review request.
func (h *ArtifactHandler) RequestReview(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.GetUser(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	id, ok := ParseArtifactID(w, r, h.logger)
	if !ok {
		return
	}

	review, err := h.artifacts.RequestReview(r.Context(), user, id)
	if err != nil {
		ServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusCreated, review); err != nil {
		h.logger.Error("Failed to encode review", zap.Error(err))
	}
}

// ListTags handles GET /api/artifacts/{id}/tags requests.
func (h *ArtifactHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseArtifactID(w, r, h.logger)
	if !ok {
		return
	}

	tags, err := h.artifacts.ListTags(r.Context(), id)
	if err != nil {
		ServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, tags); err != nil {
		h.logger.Error("Failed to encode tag list", zap.Error(err))
	}
}

type addTagRequest struct {
	Tag string `json:"tag"`
}

// AddTag handles POST /api/artifacts/{id}/tags requests. Owner-only.
func (h *ArtifactHandler) AddTag(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.GetUser(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	id, ok := ParseArtifactID(w, r, h.logger)
	if !ok {
		return
	}

	var req addTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if req.Tag == "" {
		h.writeError(w, http.StatusBadRequest, "missing_fields", "Tag is required")
		return
	}

	tag, err := h.artifacts.AddTag(r.Context(), user, id, req.Tag)
	if err != nil {
		ServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusCreated, tag); err != nil {
		h.logger.Error("Failed to encode tag", zap.Error(err))
	}
}

// RemoveTag handles DELETE /api/artifacts/{id}/tags/{tag_id} requests.
// Owner-only.
func (h *ArtifactHandler) RemoveTag(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.GetUser(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	id, ok := ParseArtifactID(w, r, h.logger)
	if !ok {
		return
	}

	tagID, ok := ParseTagID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.artifacts.RemoveTag(r.Context(), user, id, tagID); err != nil {
		ServiceError(w, h.logger, err)
		return
	}

	response := ApiResponse{Success: true, Message: "Tag removed"}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to encode tag response", zap.Error(err))
	}
}

func (h *ArtifactHandler) writeError(w http.ResponseWriter, statusCode int, errorCode, message string) {
	if err := ErrorResponse(w, statusCode, errorCode, message); err != nil {
		h.logger.Error("Failed to write error response", zap.Error(err))
	}
}
