package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/sandip79g/DKN-Backend/pkg/config"
)

// Token validation errors.
var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrMissingSubject = errors.New("missing subject claim")
)

// TokenService issues and validates signed access and refresh tokens.
// It is a pure function of its inputs, the shared secret and the clock:
// no state is kept between calls.
type TokenService struct {
	secret     []byte
	method     jwt.SigningMethod
	accessTTL  time.Duration
	refreshTTL time.Duration

	// now is swappable for expiry tests.
	now func() time.Time
}

// NewTokenService creates a TokenService from auth configuration.
// Only symmetric HMAC algorithms are accepted.
func NewTokenService(cfg config.AuthConfig) (*TokenService, error) {
	method := jwt.GetSigningMethod(cfg.SigningAlgorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", cfg.SigningAlgorithm)
	}

	return &TokenService{
		secret:     []byte(cfg.SigningSecret),
		method:     method,
		accessTTL:  time.Duration(cfg.AccessTokenMinutes) * time.Minute,
		refreshTTL: time.Duration(cfg.RefreshTokenDays) * 24 * time.Hour,
		now:        time.Now,
	}, nil
}

// IssueAccessToken mints a short-lived token whose subject is the user id.
func (s *TokenService) IssueAccessToken(userID uuid.UUID) (string, error) {
	return s.issue(userID, s.accessTTL)
}

// IssueRefreshToken mints a long-lived token whose subject is the user id.
// The shape is identical to an access token; there is no type discriminator
// between the two.
func (s *TokenService) IssueRefreshToken(userID uuid.UUID) (string, error) {
	return s.issue(userID, s.refreshTTL)
}

func (s *TokenService) issue(userID uuid.UUID, ttl time.Duration) (string, error) {
	now := s.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies the signature and expiry of a token and returns its claims.
// Malformed, expired and forged tokens all resolve to ErrInvalidToken; callers
// must treat that as "unauthenticated", never as a crash.
func (s *TokenService) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// UserID parses the subject claim as a user id.
// Returns ErrMissingSubject if the claim is absent or not a UUID.
func (c *Claims) UserID() (uuid.UUID, error) {
	if c.Subject == "" {
		return uuid.Nil, ErrMissingSubject
	}
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil, ErrMissingSubject
	}
	return id, nil
}
