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

// ArtifactRepository defines the interface for knowledge artifact data access.
type ArtifactRepository interface {
	Create(ctx context.Context, artifact *models.KnowledgeArtifact) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.KnowledgeArtifact, error)
	Update(ctx context.Context, artifact *models.KnowledgeArtifact) error
	// Delete removes an artifact; the review, ratings and tags rows go with it
	// via ON DELETE CASCADE.
	Delete(ctx context.Context, id uuid.UUID) error
	ListPublished(ctx context.Context) ([]*models.KnowledgeArtifact, error)
	// ListByOwner returns all of the owner's artifacts regardless of status,
	// with review data attached where it exists.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.KnowledgeArtifact, error)
	// ListPendingReview returns artifacts whose review decision is not APPROVED,
	// with review data attached. Approved-but-unpublished items stay out of the
	// reviewer queue.
	ListPendingReview(ctx context.Context) ([]*models.KnowledgeArtifact, error)
}

// artifactRepository implements ArtifactRepository using PostgreSQL.
type artifactRepository struct {
	db *database.DB
}

// NewArtifactRepository creates a new artifact repository.
func NewArtifactRepository(db *database.DB) ArtifactRepository {
	return &artifactRepository{db: db}
}

var _ ArtifactRepository = (*artifactRepository)(nil)

func (r *artifactRepository) Create(ctx context.Context, artifact *models.KnowledgeArtifact) error {
	if artifact.ID == uuid.Nil {
		artifact.ID = uuid.New()
	}
	now := time.Now().UTC()
	artifact.CreatedOn = now
	artifact.LastUpdated = now

	query := `
		INSERT INTO artifacts (id, title, summary, content, status, file, created_by, created_on, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(ctx, query,
		artifact.ID,
		artifact.Title,
		artifact.Summary,
		artifact.Content,
		artifact.Status,
		artifact.File,
		artifact.CreatedBy,
		artifact.CreatedOn,
		artifact.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("failed to create artifact: %w", err)
	}

	return nil
}

func (r *artifactRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.KnowledgeArtifact, error) {
	query := `
		SELECT id, title, summary, content, status, file, created_by, created_on, last_updated
		FROM artifacts
		WHERE id = $1`

	artifact, err := scanArtifact(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return artifact, nil
}

// Update overwrites the artifact's mutable fields. created_by never changes.
func (r *artifactRepository) Update(ctx context.Context, artifact *models.KnowledgeArtifact) error {
	artifact.LastUpdated = time.Now().UTC()

	query := `
		UPDATE artifacts
		SET title = $2, summary = $3, content = $4, status = $5, file = $6, last_updated = $7
		WHERE id = $1`

	result, err := r.db.Exec(ctx, query,
		artifact.ID,
		artifact.Title,
		artifact.Summary,
		artifact.Content,
		artifact.Status,
		artifact.File,
		artifact.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("failed to update artifact: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *artifactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM artifacts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete artifact: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *artifactRepository) ListPublished(ctx context.Context) ([]*models.KnowledgeArtifact, error) {
	query := `
		SELECT id, title, summary, content, status, file, created_by, created_on, last_updated
		FROM artifacts
		WHERE status = $1
		ORDER BY created_on DESC`

	rows, err := r.db.Query(ctx, query, models.StatusPublished)
	if err != nil {
		return nil, fmt.Errorf("failed to query published artifacts: %w", err)
	}
	defer rows.Close()

	return collectArtifacts(rows)
}

func (r *artifactRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.KnowledgeArtifact, error) {
	query := `
		SELECT a.id, a.title, a.summary, a.content, a.status, a.file, a.created_by, a.created_on, a.last_updated,
		       r.id, r.artifact_id, r.decision, r.comments, r.reviewed_by, r.submitted_on
		FROM artifacts a
		LEFT JOIN reviews r ON r.artifact_id = a.id
		WHERE a.created_by = $1
		ORDER BY a.created_on DESC`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query owner artifacts: %w", err)
	}
	defer rows.Close()

	return collectArtifactsWithReview(rows)
}

func (r *artifactRepository) ListPendingReview(ctx context.Context) ([]*models.KnowledgeArtifact, error) {
	query := `
		SELECT a.id, a.title, a.summary, a.content, a.status, a.file, a.created_by, a.created_on, a.last_updated,
		       r.id, r.artifact_id, r.decision, r.comments, r.reviewed_by, r.submitted_on
		FROM artifacts a
		JOIN reviews r ON r.artifact_id = a.id
		WHERE r.decision <> $1
		ORDER BY r.submitted_on`

	rows, err := r.db.Query(ctx, query, models.DecisionApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to query review queue: %w", err)
	}
	defer rows.Close()

	return collectArtifactsWithReview(rows)
}

func scanArtifact(row pgx.Row) (*models.KnowledgeArtifact, error) {
	var a models.KnowledgeArtifact
	err := row.Scan(
		&a.ID,
		&a.Title,
		&a.Summary,
		&a.Content,
		&a.Status,
		&a.File,
		&a.CreatedBy,
		&a.CreatedOn,
		&a.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan artifact: %w", err)
	}
	return &a, nil
}

func collectArtifacts(rows pgx.Rows) ([]*models.KnowledgeArtifact, error) {
	var artifacts []*models.KnowledgeArtifact
	for rows.Next() {
		artifact, err := scanArtifact(rows)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, artifact)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating artifacts: %w", err)
	}

	return artifacts, nil
}

// collectArtifactsWithReview scans artifact rows joined against the reviews
// table. Review columns are nullable on a LEFT JOIN.
func collectArtifactsWithReview(rows pgx.Rows) ([]*models.KnowledgeArtifact, error) {
	var artifacts []*models.KnowledgeArtifact
	for rows.Next() {
		var a models.KnowledgeArtifact
		var reviewID, reviewArtifactID *uuid.UUID
		var decision, comments *string
		var reviewedBy *uuid.UUID
		var submittedOn *time.Time

		err := rows.Scan(
			&a.ID,
			&a.Title,
			&a.Summary,
			&a.Content,
			&a.Status,
			&a.File,
			&a.CreatedBy,
			&a.CreatedOn,
			&a.LastUpdated,
			&reviewID,
			&reviewArtifactID,
			&decision,
			&comments,
			&reviewedBy,
			&submittedOn,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan artifact with review: %w", err)
		}

		if reviewID != nil {
			a.Review = &models.ArtifactReviewStatus{
				ID:          *reviewID,
				ArtifactID:  *reviewArtifactID,
				Decision:    *decision,
				Comments:    *comments,
				ReviewedBy:  reviewedBy,
				SubmittedOn: *submittedOn,
			}
		}

		artifacts = append(artifacts, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating artifacts: %w", err)
	}

	return artifacts, nil
}
