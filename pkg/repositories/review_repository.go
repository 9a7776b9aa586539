package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sandip79g/DKN-Backend/pkg/apperrors"
	"github.com/sandip79g/DKN-Backend/pkg/database"
	"github.com/sandip79g/DKN-Backend/pkg/models"
)

// ReviewRepository defines the interface for artifact review data access.
type ReviewRepository interface {
	// Create inserts a review request. The unique index on artifact_id is the
	// source of truth for the one-review-per-artifact invariant; violations
	// map to ErrReviewAlreadyRequested.
	Create(ctx context.Context, review *models.ArtifactReviewStatus) error
	GetByArtifact(ctx context.Context, artifactID uuid.UUID) (*models.ArtifactReviewStatus, error)
	ExistsForArtifact(ctx context.Context, artifactID uuid.UUID) (bool, error)
	// Update sets decision, comments and reviewer on an existing review.
	Update(ctx context.Context, review *models.ArtifactReviewStatus) error
}

// reviewRepository implements ReviewRepository using PostgreSQL.
type reviewRepository struct {
	db *database.DB
}

// NewReviewRepository creates a new review repository.
func NewReviewRepository(db *database.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

var _ ReviewRepository = (*reviewRepository)(nil)

func (r *reviewRepository) Create(ctx context.Context, review *models.ArtifactReviewStatus) error {
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	if review.Decision == "" {
		review.Decision = models.DecisionPending
	}
	review.SubmittedOn = time.Now().UTC()

	query := `
		INSERT INTO reviews (id, artifact_id, decision, comments, reviewed_by, submitted_on)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		review.ID,
		review.ArtifactID,
		review.Decision,
		review.Comments,
		review.ReviewedBy,
		review.SubmittedOn,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrReviewAlreadyRequested
		}
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

func (r *reviewRepository) GetByArtifact(ctx context.Context, artifactID uuid.UUID) (*models.ArtifactReviewStatus, error) {
	query := `
		SELECT id, artifact_id, decision, comments, reviewed_by, submitted_on
		FROM reviews
		WHERE artifact_id = $1`

	var review models.ArtifactReviewStatus
	err := r.db.QueryRow(ctx, query, artifactID).Scan(
		&review.ID,
		&review.ArtifactID,
		&review.Decision,
		&review.Comments,
		&review.ReviewedBy,
		&review.SubmittedOn,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return &review, nil
}

func (r *reviewRepository) ExistsForArtifact(ctx context.Context, artifactID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM reviews WHERE artifact_id = $1)`, artifactID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check review existence: %w", err)
	}
	return exists, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *models.ArtifactReviewStatus) error {
	query := `
		UPDATE reviews
		SET decision = $2, comments = $3, reviewed_by = $4
		WHERE id = $1`

	result, err := r.db.Exec(ctx, query,
		review.ID,
		review.Decision,
		review.Comments,
		review.ReviewedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}
