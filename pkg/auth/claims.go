// Package auth provides password hashing, token issuance and the
// bearer-token middleware that resolves requests to authenticated users.
package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sandip79g/DKN-Backend/pkg/models"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// UserKey is the context key for storing the authenticated user.
const UserKey contextKey = "user"

// Claims is the token claims structure. Only the registered claims are used;
// the subject carries the user id.
type Claims struct {
	jwt.RegisteredClaims
}

// GetUser retrieves the authenticated user from the request context.
// Returns nil and false if no user is present.
func GetUser(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserKey).(*models.User)
	return user, ok
}
