package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/sandip79g/DKN-Backend/pkg/auth"
	"github.com/sandip79g/DKN-Backend/pkg/services"
)

// RatingHandler handles the rating ledger endpoints.
type RatingHandler struct {
	ratings services.RatingService
	logger  *zap.Logger
}

// NewRatingHandler creates a new RatingHandler.
func NewRatingHandler(ratings services.RatingService, logger *zap.Logger) *RatingHandler {
	return &RatingHandler{
		ratings: ratings,
		logger:  logger.Named("rating_handler"),
	}
}

// RegisterRoutes registers the rating handler's routes on the given mux.
func (h *RatingHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("POST /api/rate-artifact/{id}", authMiddleware.RequireAuth(h.Rate))
	mux.HandleFunc("GET /api/artifacts/{id}/ratings", h.List)
}

type rateRequest struct {
	Score int `json:"score"`
}

// Rate handles POST /api/rate-artifact/{id} requests. Every submission
// appends a new ledger entry; repeat ratings are allowed.
func (h *RatingHandler) Rate(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.GetUser(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	id, ok := ParseArtifactID(w, r, h.logger)
	if !ok {
		return
	}

	var req rateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	rating, err := h.ratings.Rate(r.Context(), user, id, req.Score)
	if err != nil {
		ServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusCreated, rating); err != nil {
		h.logger.Error("Failed to encode rating", zap.Error(err))
	}
}

// List handles GET /api/artifacts/{id}/ratings requests.
func (h *RatingHandler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseArtifactID(w, r, h.logger)
	if !ok {
		return
	}

	ratings, err := h.ratings.ListForArtifact(r.Context(), id)
	if err != nil {
		ServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, ratings); err != nil {
		h.logger.Error("Failed to encode rating list", zap.Error(err))
	}
}

func (h *RatingHandler) writeError(w http.ResponseWriter, statusCode int, errorCode, message string) {
	if err := ErrorResponse(w, statusCode, errorCode, message); err != nil {
		h.logger.Error("Failed to write error response", zap.Error(err))
	}
}
