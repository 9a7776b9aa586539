package testhelpers

import (
	"testing"

	"github.com/google/uuid"

	"github.com/sandip79g/DKN-Backend/pkg/auth"
	"github.com/sandip79g/DKN-Backend/pkg/config"
)

// TestSigningSecret is the shared secret used by test token services.
const TestSigningSecret = "test-signing-secret"

// NewTestTokenService returns a token service signed with TestSigningSecret
// and the default lifetimes.
func NewTestTokenService(t *testing.T) *auth.TokenService {
	t.Helper()

	svc, err := auth.NewTokenService(config.AuthConfig{
		SigningSecret:      TestSigningSecret,
		SigningAlgorithm:   "HS256",
		AccessTokenMinutes: 30,
		RefreshTokenDays:   7,
	})
	if err != nil {
		t.Fatalf("Failed to create token service: %v", err)
	}
	return svc
}

// BearerFor mints an access token for the given user and returns it with the
// "Bearer " prefix for an Authorization header.
func BearerFor(t *testing.T, svc *auth.TokenService, userID uuid.UUID) string {
	t.Helper()

	token, err := svc.IssueAccessToken(userID)
	if err != nil {
		t.Fatalf("Failed to issue access token: %v", err)
	}
	return "Bearer " + token
}
