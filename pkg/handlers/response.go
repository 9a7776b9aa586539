package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/sandip79g/DKN-Backend/pkg/apperrors"
	"github.com/sandip79g/DKN-Backend/pkg/auth"
)

// ApiResponse is the envelope every JSON endpoint writes.
type ApiResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse writes a JSON error response and returns any encoding error.
func ErrorResponse(w http.ResponseWriter, statusCode int, errorCode, message string) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(ApiResponse{
		Success: false,
		Error:   errorCode,
		Message: message,
	})
}

// WriteJSON writes a JSON response and returns any encoding error.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
	}
	return json.NewEncoder(w).Encode(data)
}

// ServiceError maps a service-layer error onto the HTTP taxonomy and writes
// the response. Unexpected errors are logged with their real cause and
// surfaced as a generic 500; internal error text never reaches the client.
func ServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var statusCode int
	var errorCode, message string

	switch {
	case errors.Is(err, apperrors.ErrEmailTaken):
		statusCode, errorCode, message = http.StatusBadRequest, "email_taken", "Email already registered"
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		statusCode, errorCode, message = http.StatusUnauthorized, "invalid_credentials", "Invalid credentials"
	case errors.Is(err, auth.ErrInvalidToken):
		statusCode, errorCode, message = http.StatusUnauthorized, "unauthorized", "Invalid token"
	case errors.Is(err, apperrors.ErrForbidden):
		statusCode, errorCode, message = http.StatusForbidden, "forbidden", "Unauthorized"
	case errors.Is(err, apperrors.ErrAlreadyPublished):
		statusCode, errorCode, message = http.StatusBadRequest, "already_published", "Artifact is already published"
	case errors.Is(err, apperrors.ErrReviewAlreadyRequested):
		statusCode, errorCode, message = http.StatusBadRequest, "review_exists", "Review already requested for this artifact"
	case errors.Is(err, apperrors.ErrReviewNotFound):
		statusCode, errorCode, message = http.StatusNotFound, "review_not_found", "No review request found for this artifact"
	case errors.Is(err, apperrors.ErrNotFound):
		statusCode, errorCode, message = http.StatusNotFound, "not_found", "Artifact not found"
	case errors.Is(err, apperrors.ErrInvalidStatus):
		statusCode, errorCode, message = http.StatusBadRequest, "invalid_status", "Invalid artifact status"
	case errors.Is(err, apperrors.ErrInvalidDecision):
		statusCode, errorCode, message = http.StatusBadRequest, "invalid_decision", "Invalid review decision"
	case errors.Is(err, apperrors.ErrInvalidRole):
		statusCode, errorCode, message = http.StatusBadRequest, "invalid_role", "Invalid role"
	case errors.Is(err, apperrors.ErrInvalidRegion):
		statusCode, errorCode, message = http.StatusBadRequest, "invalid_region", "Invalid region"
	case errors.Is(err, apperrors.ErrInvalidScore):
		statusCode, errorCode, message = http.StatusBadRequest, "invalid_score", "Score must be between 1 and 5"
	default:
		logger.Error("Unexpected service error", zap.Error(err))
		statusCode, errorCode, message = http.StatusInternalServerError, "internal_error", "Internal server error"
	}

	if err := ErrorResponse(w, statusCode, errorCode, message); err != nil {
		logger.Error("Failed to write error response", zap.Error(err))
	}
}
