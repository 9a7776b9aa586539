package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sandip79g/DKN-Backend/pkg/models"
)

// UserStore is the narrow lookup interface the middleware needs to resolve a
// subject claim into a full user record.
type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Middleware resolves bearer tokens into authenticated users. Resolution runs
// on every protected route; nothing is cached across requests.
type Middleware struct {
	tokens *TokenService
	users  UserStore
	logger *zap.Logger
}

// NewMiddleware creates auth middleware backed by the given token service and
// user store.
func NewMiddleware(tokens *TokenService, users UserStore, logger *zap.Logger) *Middleware {
	return &Middleware{
		tokens: tokens,
		users:  users,
		logger: logger,
	}
}

// RequireAuth validates the Authorization header, decodes the token and loads
// the user it identifies. The resolved user is set in the request context for
// downstream handlers.
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			m.unauthorized(w, "Invalid authorization header")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := m.tokens.Decode(tokenString)
		if err != nil {
			m.logger.Debug("Token decode failed",
				zap.String("path", r.URL.Path),
				zap.Error(err))
			m.unauthorized(w, "Invalid token")
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			m.unauthorized(w, "Invalid token")
			return
		}

		user, err := m.users.GetByID(r.Context(), userID)
		if err != nil || user == nil {
			m.unauthorized(w, "User not found")
			return
		}

		ctx := context.WithValue(r.Context(), UserKey, user)
		next(w, r.WithContext(ctx))
	}
}

// unauthorized returns a 401 response with JSON error body.
func (m *Middleware) unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   "unauthorized",
		"message": message,
	})
}
