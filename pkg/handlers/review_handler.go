package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/sandip79g/DKN-Backend/pkg/auth"
	"github.com/sandip79g/DKN-Backend/pkg/authz"
	"github.com/sandip79g/DKN-Backend/pkg/services"
)

// ReviewHandler handles the reviewer-facing endpoints: the review queue and
// review decisions. Both are restricted to Knowledge Champions and Admins.
type ReviewHandler struct {
	artifacts services.ArtifactService
	logger    *zap.Logger
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(artifacts services.ArtifactService, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		artifacts: artifacts,
		logger:    logger.Named("review_handler"),
	}
}

// RegisterRoutes registers the review handler's routes on the given mux.
func (h *ReviewHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/review-requests", authMiddleware.RequireAuth(h.ListRequests))
	mux.HandleFunc("POST /api/review-artifact/{id}", authMiddleware.RequireAuth(h.Decide))
}

// ListRequests handles GET /api/review-requests requests. Returns every
// artifact with an open review request, not yet approved.
func (h *ReviewHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.GetUser(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	if !authz.IsReviewer(user) {
		h.writeError(w, http.StatusForbidden, "forbidden",
			"Permission denied. Only Knowledge Champions and Admins can view review requests.")
		return
	}

	artifacts, err := h.artifacts.ListReviewQueue(r.Context())
	if err != nil {
		ServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, artifacts); err != nil {
		h.logger.Error("Failed to encode review queue", zap.Error(err))
	}
}

type reviewDecisionRequest struct {
	Decision string `json:"decision"`
	Comments string `json:"comments"`
}

// Decide handles POST /api/review-artifact/{id} requests. Records the
// decision and comments on the artifact's review; the artifact's own status
// is left untouched.
func (h *ReviewHandler) Decide(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.GetUser(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	if !authz.IsReviewer(user) {
		h.writeError(w, http.StatusForbidden, "forbidden",
			"Permission denied. Only Knowledge Champions and Admins can review artifacts.")
		return
	}

	id, ok := ParseArtifactID(w, r, h.logger)
	if !ok {
		return
	}

	var req reviewDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if req.Decision == "" {
		h.writeError(w, http.StatusBadRequest, "missing_fields", "Decision is required")
		return
	}

	review, err := h.artifacts.DecideReview(r.Context(), user, id, req.Decision, req.Comments)
	if err != nil {
		ServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, review); err != nil {
		h.logger.Error("Failed to encode review", zap.Error(err))
	}
}

func (h *ReviewHandler) writeError(w http.ResponseWriter, statusCode int, errorCode, message string) {
	if err := ErrorResponse(w, statusCode, errorCode, message); err != nil {
		h.logger.Error("Failed to write error response", zap.Error(err))
	}
}
