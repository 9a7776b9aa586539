package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/sandip79g/DKN-Backend/pkg/auth"
	"github.com/sandip79g/DKN-Backend/pkg/services"
)

// AuthHandler handles registration, login, token refresh and the
// authenticated profile endpoints.
type AuthHandler struct {
	accounts  services.AccountService
	artifacts services.ArtifactService
	logger    *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(accounts services.AccountService, artifacts services.ArtifactService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		accounts:  accounts,
		artifacts: artifacts,
		logger:    logger.Named("auth_handler"),
	}
}

// RegisterRoutes registers the auth handler's routes on the given mux.
func (h *AuthHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("POST /api/register", h.Register)
	mux.HandleFunc("POST /api/login", h.Login)
	mux.HandleFunc("POST /api/refresh-token", h.Refresh)
	mux.HandleFunc("GET /api/profile", authMiddleware.RequireAuth(h.Profile))
	mux.HandleFunc("GET /api/dashboard", authMiddleware.RequireAuth(h.Dashboard))
}

type registerRequest struct {
	Email                string `json:"email"`
	Password             string `json:"password"`
	Name                 string `json:"name"`
	Role                 string `json:"role"`
	Region               string `json:"region"`
	IsTrustedContributor bool   `json:"is_trusted_contributor"`
}

// Register handles POST /api/register requests.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		h.writeError(w, http.StatusBadRequest, "missing_fields", "Email, password and name are required")
		return
	}

	user, err := h.accounts.Register(r.Context(), services.RegisterInput{
		Email:                req.Email,
		Password:             req.Password,
		Name:                 req.Name,
		Role:                 req.Role,
		Region:               req.Region,
		IsTrustedContributor: req.IsTrustedContributor,
	})
	if err != nil {
		ServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusCreated, user); err != nil {
		h.logger.Error("Failed to encode register response", zap.Error(err))
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/login requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		h.writeError(w, http.StatusBadRequest, "missing_fields", "Email and password are required")
		return
	}

	pair, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		ServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, pair); err != nil {
		h.logger.Error("Failed to encode login response", zap.Error(err))
	}
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh handles POST /api/refresh-token requests.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if req.RefreshToken == "" {
		h.writeError(w, http.StatusBadRequest, "missing_fields", "Refresh token is required")
		return
	}

	pair, err := h.accounts.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		ServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, pair); err != nil {
		h.logger.Error("Failed to encode refresh response", zap.Error(err))
	}
}

// Profile handles GET /api/profile requests.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.GetUser(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	if err := WriteJSON(w, http.StatusOK, user); err != nil {
		h.logger.Error("Failed to encode profile response", zap.Error(err))
	}
}

// Dashboard handles GET /api/dashboard requests. Returns the caller's
// profile together with all artifacts they own.
func (h *AuthHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
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

	response := map[string]any{
		"user":      user,
		"artifacts": artifacts,
	}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to encode dashboard response", zap.Error(err))
	}
}

func (h *AuthHandler) writeError(w http.ResponseWriter, statusCode int, errorCode, message string) {
	if err := ErrorResponse(w, statusCode, errorCode, message); err != nil {
		h.logger.Error("Failed to write error response", zap.Error(err))
	}
}
