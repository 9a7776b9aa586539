package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sandip79g/DKN-Backend/pkg/apperrors"
	"github.com/sandip79g/DKN-Backend/pkg/authz"
	"github.com/sandip79g/DKN-Backend/pkg/models"
	"github.com/sandip79g/DKN-Backend/pkg/repositories"
	"github.com/sandip79g/DKN-Backend/pkg/storage"
)

// Upload is a pending file attachment read from a multipart request.
type Upload struct {
	Filename string
	Content  io.Reader
}

// ArtifactInput carries the writable fields of a create or update request.
// Update is a full overwrite of these fields.
type ArtifactInput struct {
	Title   string
	Summary string
	Content string
	Status  string
	File    *Upload
}

// ArtifactService manages the artifact lifecycle: authoring, status changes,
// review requests and review decisions. Artifact status and review decision
// evolve independently; an approved review never auto-publishes.
type ArtifactService interface {
	Create(ctx context.Context, owner *models.User, input ArtifactInput) (*models.KnowledgeArtifact, error)
	// Get returns an artifact with its review attached when one exists.
	Get(ctx context.Context, id uuid.UUID) (*models.KnowledgeArtifact, error)
	Update(ctx context.Context, user *models.User, id uuid.UUID, input ArtifactInput) (*models.KnowledgeArtifact, error)
	Delete(ctx context.Context, user *models.User, id uuid.UUID) error
	Publish(ctx context.Context, user *models.User, id uuid.UUID) error
	RequestReview(ctx context.Context, user *models.User, id uuid.UUID) (*models.ArtifactReviewStatus, error)
	DecideReview(ctx context.Context, reviewer *models.User, artifactID uuid.UUID, decision, comments string) (*models.ArtifactReviewStatus, error)
	ListPublished(ctx context.Context) ([]*models.KnowledgeArtifact, error)
	ListMine(ctx context.Context, owner *models.User) ([]*models.KnowledgeArtifact, error)
	ListReviewQueue(ctx context.Context) ([]*models.KnowledgeArtifact, error)
	AddTag(ctx context.Context, user *models.User, artifactID uuid.UUID, tag string) (*models.ArtifactTag, error)
	ListTags(ctx context.Context, artifactID uuid.UUID) ([]*models.ArtifactTag, error)
	RemoveTag(ctx context.Context, user *models.User, artifactID, tagID uuid.UUID) error
}

type artifactService struct {
	artifacts repositories.ArtifactRepository
	reviews   repositories.ReviewRepository
	tags      repositories.TagRepository
	files     *storage.FileStore
	logger    *zap.Logger
}

// NewArtifactService creates a new artifact service.
func NewArtifactService(
	artifacts repositories.ArtifactRepository,
	reviews repositories.ReviewRepository,
	tags repositories.TagRepository,
	files *storage.FileStore,
	logger *zap.Logger,
) ArtifactService {
	return &artifactService{
		artifacts: artifacts,
		reviews:   reviews,
		tags:      tags,
		files:     files,
		logger:    logger.Named("artifact"),
	}
}

var _ ArtifactService = (*artifactService)(nil)

func (s *artifactService) Create(ctx context.Context, owner *models.User, input ArtifactInput) (*models.KnowledgeArtifact, error) {
	status := input.Status
	if status == "" {
		status = models.StatusDraft
	}
	if !models.IsValidStatus(status) {
		return nil, apperrors.ErrInvalidStatus
	}

	artifact := &models.KnowledgeArtifact{
		Title:     input.Title,
		Summary:   input.Summary,
		Content:   input.Content,
		Status:    status,
		CreatedBy: owner.ID,
	}

	if input.File != nil {
		// Written before the record commits; a crash in between leaves an
		// orphaned blob, never a record pointing at a missing file.
		name, err := s.files.Save(owner.ID, input.File.Filename, input.File.Content)
		if err != nil {
			return nil, fmt.Errorf("failed to store upload: %w", err)
		}
		artifact.File = name
	}

	if err := s.artifacts.Create(ctx, artifact); err != nil {
		return nil, err
	}

	s.logger.Info("Artifact created",
		zap.String("artifact_id", artifact.ID.String()),
		zap.String("owner_id", owner.ID.String()),
		zap.String("status", artifact.Status))

	return artifact, nil
}

func (s *artifactService) Get(ctx context.Context, id uuid.UUID) (*models.KnowledgeArtifact, error) {
	artifact, err := s.artifacts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	review, err := s.reviews.GetByArtifact(ctx, id)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	artifact.Review = review

	return artifact, nil
}

// Update is owner-only and overwrites title, summary, content, status and
// file. Status accepts any valid value; transitions are not validated.
func (s *artifactService) Update(ctx context.Context, user *models.User, id uuid.UUID, input ArtifactInput) (*models.KnowledgeArtifact, error) {
	artifact, err := s.artifacts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !authz.IsOwner(user, artifact) {
		return nil, apperrors.ErrForbidden
	}

	status := input.Status
	if status == "" {
		status = models.StatusDraft
	}
	if !models.IsValidStatus(status) {
		return nil, apperrors.ErrInvalidStatus
	}

	artifact.Title = input.Title
	artifact.Summary = input.Summary
	artifact.Content = input.Content
	artifact.Status = status

	if input.File != nil {
		// Old blob goes first, then the replacement is written. Not atomic:
		// a crash in between leaves the artifact temporarily file-less.
		if artifact.File != "" {
			if err := s.files.Remove(user.ID, artifact.File); err != nil {
				return nil, err
			}
		}

		name, err := s.files.Save(user.ID, input.File.Filename, input.File.Content)
		if err != nil {
			return nil, fmt.Errorf("failed to store upload: %w", err)
		}
		artifact.File = name
	}

	if err := s.artifacts.Update(ctx, artifact); err != nil {
		return nil, err
	}

	return artifact, nil
}

func (s *artifactService) Delete(ctx context.Context, user *models.User, id uuid.UUID) error {
	artifact, err := s.artifacts.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !authz.IsOwner(user, artifact) {
		return apperrors.ErrForbidden
	}

	if err := s.artifacts.Delete(ctx, id); err != nil {
		return err
	}

	if artifact.File != "" {
		if err := s.files.Remove(artifact.CreatedBy, artifact.File); err != nil {
			s.logger.Warn("Failed to remove stored file for deleted artifact",
				zap.String("artifact_id", id.String()),
				zap.Error(err))
		}
	}

	s.logger.Info("Artifact deleted",
		zap.String("artifact_id", id.String()),
		zap.String("owner_id", user.ID.String()))

	return nil
}

// Publish is owner-only and independent of any review outcome.
func (s *artifactService) Publish(ctx context.Context, user *models.User, id uuid.UUID) error {
	artifact, err := s.artifacts.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !authz.IsOwner(user, artifact) {
		return apperrors.ErrForbidden
	}

	if artifact.Status == models.StatusPublished {
		return apperrors.ErrAlreadyPublished
	}

	artifact.Status = models.StatusPublished
	if err := s.artifacts.Update(ctx, artifact); err != nil {
		return err
	}

	s.logger.Info("Artifact published", zap.String("artifact_id", id.String()))
	return nil
}

func (s *artifactService) RequestReview(ctx context.Context, user *models.User, id uuid.UUID) (*models.ArtifactReviewStatus, error) {
	artifact, err := s.artifacts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !authz.IsOwner(user, artifact) {
		return nil, apperrors.ErrForbidden
	}

	// Friendlier error path only; the unique index on artifact_id decides
	// races between concurrent requests.
	exists, err := s.reviews.ExistsForArtifact(ctx, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrReviewAlreadyRequested
	}

	review := &models.ArtifactReviewStatus{
		ArtifactID: id,
		Decision:   models.DecisionPending,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	s.logger.Info("Review requested",
		zap.String("artifact_id", id.String()),
		zap.String("owner_id", user.ID.String()))

	return review, nil
}

// DecideReview sets decision, comments and reviewer on an existing review.
// It does not change the artifact's status.
func (s *artifactService) DecideReview(ctx context.Context, reviewer *models.User, artifactID uuid.UUID, decision, comments string) (*models.ArtifactReviewStatus, error) {
	if !models.IsValidDecision(decision) {
		return nil, apperrors.ErrInvalidDecision
	}

	if _, err := s.artifacts.GetByID(ctx, artifactID); err != nil {
		return nil, err
	}

	review, err := s.reviews.GetByArtifact(ctx, artifactID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrReviewNotFound
		}
		return nil, err
	}

	review.Decision = decision
	review.Comments = comments
	reviewerID := reviewer.ID
	review.ReviewedBy = &reviewerID

	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, err
	}

	s.logger.Info("Review decided",
		zap.String("artifact_id", artifactID.String()),
		zap.String("reviewer_id", reviewer.ID.String()),
		zap.String("decision", decision))

	return review, nil
}

func (s *artifactService) ListPublished(ctx context.Context) ([]*models.KnowledgeArtifact, error) {
	return s.artifacts.ListPublished(ctx)
}

func (s *artifactService) ListMine(ctx context.Context, owner *models.User) ([]*models.KnowledgeArtifact, error) {
	return s.artifacts.ListByOwner(ctx, owner.ID)
}

func (s *artifactService) ListReviewQueue(ctx context.Context) ([]*models.KnowledgeArtifact, error) {
	return s.artifacts.ListPendingReview(ctx)
}

func (s *artifactService) AddTag(ctx context.Context, user *models.User, artifactID uuid.UUID, tag string) (*models.ArtifactTag, error) {
	artifact, err := s.artifacts.GetByID(ctx, artifactID)
	if err != nil {
		return nil, err
	}

	if !authz.IsOwner(user, artifact) {
		return nil, apperrors.ErrForbidden
	}

	t := &models.ArtifactTag{ArtifactID: artifactID, Tag: tag}
	if err := s.tags.Create(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *artifactService) ListTags(ctx context.Context, artifactID uuid.UUID) ([]*models.ArtifactTag, error) {
	if _, err := s.artifacts.GetByID(ctx, artifactID); err != nil {
		return nil, err
	}
	return s.tags.ListByArtifact(ctx, artifactID)
}

func (s *artifactService) RemoveTag(ctx context.Context, user *models.User, artifactID, tagID uuid.UUID) error {
	artifact, err := s.artifacts.GetByID(ctx, artifactID)
	if err != nil {
		return err
	}

	if !authz.IsOwner(user, artifact) {
		return apperrors.ErrForbidden
	}

	return s.tags.Delete(ctx, tagID)
}
