package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sandip79g/DKN-Backend/pkg/apperrors"
	"github.com/sandip79g/DKN-Backend/pkg/database"
	"github.com/sandip79g/DKN-Backend/pkg/models"
)

// TagRepository defines the interface for artifact tag data access.
type TagRepository interface {
	Create(ctx context.Context, tag *models.ArtifactTag) error
	ListByArtifact(ctx context.Context, artifactID uuid.UUID) ([]*models.ArtifactTag, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// tagRepository implements TagRepository using PostgreSQL.
type tagRepository struct {
	db *database.DB
}

// NewTagRepository creates a new tag repository.
func NewTagRepository(db *database.DB) TagRepository {
	return &tagRepository{db: db}
}

var _ TagRepository = (*tagRepository)(nil)

func (r *tagRepository) Create(ctx context.Context, tag *models.ArtifactTag) error {
	if tag.ID == uuid.Nil {
		tag.ID = uuid.New()
	}

	query := `INSERT INTO artifact_tags (id, artifact_id, tag) VALUES ($1, $2, $3)`

	_, err := r.db.Exec(ctx, query, tag.ID, tag.ArtifactID, tag.Tag)
	if err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}

	return nil
}

func (r *tagRepository) ListByArtifact(ctx context.Context, artifactID uuid.UUID) ([]*models.ArtifactTag, error) {
	query := `
		SELECT id, artifact_id, tag
		FROM artifact_tags
		WHERE artifact_id = $1
		ORDER BY tag`

	rows, err := r.db.Query(ctx, query, artifactID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	var tags []*models.ArtifactTag
	for rows.Next() {
		var tag models.ArtifactTag
		if err := rows.Scan(&tag.ID, &tag.ArtifactID, &tag.Tag); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, &tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tags: %w", err)
	}

	return tags, nil
}

func (r *tagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM artifact_tags WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}
