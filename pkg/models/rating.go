package models

import (
	"time"

	"github.com/google/uuid"
)

// Rating is an append-only score a user gives an artifact. There is no
// uniqueness constraint on (artifact, user): repeat ratings accumulate and
// downstream consumers compute their own aggregates.
type Rating struct {
	ID         uuid.UUID `json:"id"`
	ArtifactID uuid.UUID `json:"artifact_id"`
	UserID     uuid.UUID `json:"user_id"`
	Score      int       `json:"score"`
	RatedOn    time.Time `json:"rated_on"`
}

// Rating score bounds.
const (
	MinScore = 1
	MaxScore = 5
)

// IsValidScore checks if the given score is within the rating scale.
func IsValidScore(score int) bool {
	return score >= MinScore && score <= MaxScore
}
