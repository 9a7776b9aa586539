package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sandip79g/DKN-Backend/pkg/database"
	"github.com/sandip79g/DKN-Backend/pkg/models"
)

// RatingRepository defines the interface for rating data access. Ratings are
// append-only; there is no update or delete path.
type RatingRepository interface {
	Create(ctx context.Context, rating *models.Rating) error
	ListByArtifact(ctx context.Context, artifactID uuid.UUID) ([]*models.Rating, error)
}

// ratingRepository implements RatingRepository using PostgreSQL.
type ratingRepository struct {
	db *database.DB
}

// NewRatingRepository creates a new rating repository.
func NewRatingRepository(db *database.DB) RatingRepository {
	return &ratingRepository{db: db}
}

var _ RatingRepository = (*ratingRepository)(nil)

func (r *ratingRepository) Create(ctx context.Context, rating *models.Rating) error {
	if rating.ID == uuid.Nil {
		rating.ID = uuid.New()
	}
	rating.RatedOn = time.Now().UTC()

	query := `
		INSERT INTO ratings (id, artifact_id, user_id, score, rated_on)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, query,
		rating.ID,
		rating.ArtifactID,
		rating.UserID,
		rating.Score,
		rating.RatedOn,
	)
	if err != nil {
		return fmt.Errorf("failed to create rating: %w", err)
	}

	return nil
}

func (r *ratingRepository) ListByArtifact(ctx context.Context, artifactID uuid.UUID) ([]*models.Rating, error) {
	query := `
		SELECT id, artifact_id, user_id, score, rated_on
		FROM ratings
		WHERE artifact_id = $1
		ORDER BY rated_on`

	rows, err := r.db.Query(ctx, query, artifactID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ratings: %w", err)
	}
	defer rows.Close()

	var ratings []*models.Rating
	for rows.Next() {
		var rating models.Rating
		err := rows.Scan(
			&rating.ID,
			&rating.ArtifactID,
			&rating.UserID,
			&rating.Score,
			&rating.RatedOn,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		ratings = append(ratings, &rating)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ratings: %w", err)
	}

	return ratings, nil
}
