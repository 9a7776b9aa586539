package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sandip79g/DKN-Backend/pkg/apperrors"
	"github.com/sandip79g/DKN-Backend/pkg/auth"
	"github.com/sandip79g/DKN-Backend/pkg/models"
	"github.com/sandip79g/DKN-Backend/pkg/repositories"
)

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Email                string
	Password             string
	Name                 string
	Role                 string
	Region               string
	IsTrustedContributor bool
}

// TokenPair is an issued access/refresh token pair.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// AccountService provides registration, login and token refresh.
type AccountService interface {
	// Register creates a user with a hashed password. Returns ErrEmailTaken
	// if the email is already registered.
	Register(ctx context.Context, input RegisterInput) (*models.User, error)

	// Login verifies credentials and issues a token pair. Unknown email and
	// wrong password both return ErrInvalidCredentials so callers cannot
	// enumerate accounts.
	Login(ctx context.Context, email, password string) (*TokenPair, error)

	// Refresh reissues a token pair for the subject of the given token.
	// Any valid token is accepted; access and refresh tokens share one shape.
	// A token with a missing or unparseable subject is rejected.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
}

type accountService struct {
	users  repositories.UserRepository
	tokens *auth.TokenService
	logger *zap.Logger
}

// NewAccountService creates a new account service.
func NewAccountService(users repositories.UserRepository, tokens *auth.TokenService, logger *zap.Logger) AccountService {
	return &accountService{
		users:  users,
		tokens: tokens,
		logger: logger.Named("account"),
	}
}

var _ AccountService = (*accountService)(nil)

func (s *accountService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if input.Role == "" {
		input.Role = models.RoleConsultant
	}
	if !models.IsValidRole(input.Role) {
		return nil, apperrors.ErrInvalidRole
	}
	if input.Region == "" {
		input.Region = models.RegionEurope
	}
	if !models.IsValidRegion(input.Region) {
		return nil, apperrors.ErrInvalidRegion
	}

	// Friendlier error path only; the unique index on email decides races
	// between concurrent registrations.
	taken, err := s.users.EmailExists(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return nil, apperrors.ErrEmailTaken
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:                 input.Name,
		Email:                input.Email,
		PasswordHash:         hash,
		Role:                 input.Role,
		Region:               input.Region,
		IsTrustedContributor: input.IsTrustedContributor,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role))

	return user, nil
}

func (s *accountService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := auth.ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	pair, err := s.issuePair(user.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User logged in", zap.String("user_id", user.ID.String()))
	return pair, nil
}

func (s *accountService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokens.Decode(refreshToken)
	if err != nil {
		return nil, auth.ErrInvalidToken
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, auth.ErrInvalidToken
	}

	return s.issuePair(userID)
}

func (s *accountService) issuePair(userID uuid.UUID) (*TokenPair, error) {
	access, err := s.tokens.IssueAccessToken(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	refresh, err := s.tokens.IssueRefreshToken(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	}, nil
}
