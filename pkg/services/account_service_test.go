package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sandip79g/DKN-Backend/pkg/apperrors"
	"github.com/sandip79g/DKN-Backend/pkg/auth"
	"github.com/sandip79g/DKN-Backend/pkg/models"
	"github.com/sandip79g/DKN-Backend/pkg/testhelpers"
)

func newAccountService(t *testing.T) (AccountService, *fakeUserRepo) {
	t.Helper()

	users := newFakeUserRepo()
	tokens := testhelpers.NewTestTokenService(t)
	return NewAccountService(users, tokens, zap.NewNop()), users
}

func TestRegister_Defaults(t *testing.T) {
	svc, _ := newAccountService(t)

	user, err := svc.Register(context.Background(), RegisterInput{
		Email:    "alice@example.com",
		Password: "s3cret",
		Name:     "Alice",
	})
	require.NoError(t, err)

	assert.Equal(t, models.RoleConsultant, user.Role)
	assert.Equal(t, models.RegionEurope, user.Region)
	assert.False(t, user.IsTrustedContributor)

	// The stored hash verifies against the submitted password.
	assert.NoError(t, auth.ComparePasswordAndHash("s3cret", user.PasswordHash))
	assert.NotEqual(t, "s3cret", user.PasswordHash)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newAccountService(t)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "alice@example.com",
		Password: "s3cret",
		Name:     "Alice",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterInput{
		Email:    "alice@example.com",
		Password: "other",
		Name:     "Imposter",
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
}

func TestRegister_InvalidEnums(t *testing.T) {
	svc, _ := newAccountService(t)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "a@example.com",
		Password: "x",
		Name:     "A",
		Role:     "WIZARD",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidRole)

	_, err = svc.Register(context.Background(), RegisterInput{
		Email:    "a@example.com",
		Password: "x",
		Name:     "A",
		Region:   "ATLANTIS",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidRegion)
}

func TestLogin_Success(t *testing.T) {
	svc, _ := newAccountService(t)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "alice@example.com",
		Password: "s3cret",
		Name:     "Alice",
	})
	require.NoError(t, err)

	pair, err := svc.Login(context.Background(), "alice@example.com", "s3cret")
	require.NoError(t, err)

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "bearer", pair.TokenType)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newAccountService(t)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "alice@example.com",
		Password: "s3cret",
		Name:     "Alice",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "alice@example.com", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := newAccountService(t)

	// Unknown email and wrong password are indistinguishable to the caller.
	_, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestRefresh_Success(t *testing.T) {
	svc, _ := newAccountService(t)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "alice@example.com",
		Password: "s3cret",
		Name:     "Alice",
	})
	require.NoError(t, err)

	pair, err := svc.Login(context.Background(), "alice@example.com", "s3cret")
	require.NoError(t, err)

	renewed, err := svc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, renewed.AccessToken)
	assert.NotEmpty(t, renewed.RefreshToken)
}

func TestRefresh_GarbageToken(t *testing.T) {
	svc, _ := newAccountService(t)

	_, err := svc.Refresh(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestRefresh_MissingSubject(t *testing.T) {
	svc, _ := newAccountService(t)

	// A validly signed token without a subject claim must be rejected, not
	// resolved to a zero user.
	claims := jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(testhelpers.TestSigningSecret))
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
