package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sandip79g/DKN-Backend/pkg/apperrors"
	"github.com/sandip79g/DKN-Backend/pkg/models"
	"github.com/sandip79g/DKN-Backend/pkg/repositories"
)

// RatingService appends scores to the rating ledger. Any authenticated user
// may rate any existing artifact, the owner included, any number of times.
// No aggregate is computed here.
type RatingService interface {
	Rate(ctx context.Context, user *models.User, artifactID uuid.UUID, score int) (*models.Rating, error)
	ListForArtifact(ctx context.Context, artifactID uuid.UUID) ([]*models.Rating, error)
}

type ratingService struct {
	ratings   repositories.RatingRepository
	artifacts repositories.ArtifactRepository
	logger    *zap.Logger
}

// NewRatingService creates a new rating service.
func NewRatingService(ratings repositories.RatingRepository, artifacts repositories.ArtifactRepository, logger *zap.Logger) RatingService {
	return &ratingService{
		ratings:   ratings,
		artifacts: artifacts,
		logger:    logger.Named("rating"),
	}
}

var _ RatingService = (*ratingService)(nil)

func (s *ratingService) Rate(ctx context.Context, user *models.User, artifactID uuid.UUID, score int) (*models.Rating, error) {
	if !models.IsValidScore(score) {
		return nil, apperrors.ErrInvalidScore
	}

	if _, err := s.artifacts.GetByID(ctx, artifactID); err != nil {
		return nil, err
	}

	rating := &models.Rating{
		ArtifactID: artifactID,
		UserID:     user.ID,
		Score:      score,
	}
	if err := s.ratings.Create(ctx, rating); err != nil {
		return nil, err
	}

	s.logger.Info("Artifact rated",
		zap.String("artifact_id", artifactID.String()),
		zap.String("user_id", user.ID.String()),
		zap.Int("score", score))

	return rating, nil
}

func (s *ratingService) ListForArtifact(ctx context.Context, artifactID uuid.UUID) ([]*models.Rating, error) {
	if _, err := s.artifacts.GetByID(ctx, artifactID); err != nil {
		return nil, err
	}
	return s.ratings.ListByArtifact(ctx, artifactID)
}
