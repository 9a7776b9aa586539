package models

import (
	"time"

	"github.com/google/uuid"
)

// KnowledgeArtifact is a user-authored document with a lifecycle status and
// an optional attached file. CreatedBy is immutable after creation; only the
// owner may mutate the remaining fields.
type KnowledgeArtifact struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Content     string    `json:"content"`
	Status      string    `json:"status"`
	File        string    `json:"file,omitempty"`
	CreatedBy   uuid.UUID `json:"created_by"`
	CreatedOn   time.Time `json:"created_on"`
	LastUpdated time.Time `json:"last_updated"`

	// Review is populated by owner-scoped listings and single-artifact reads
	// when a review record exists. It is resolved via a storage query, not an
	// embedded relationship.
	Review *ArtifactReviewStatus `json:"review,omitempty"`
}

// Artifact status constants. Status and review decision evolve independently:
// owner actions set Status, reviewer actions set the review's Decision, and
// an approved review never auto-publishes.
const (
	StatusDraft            = "DRAFT"
	StatusSubmitted        = "SUBMITTED"
	StatusApproved         = "APPROVED"
	StatusPublished        = "PUBLISHED"
	StatusChangesRequested = "CHANGES_REQUESTED"
)

// ValidStatuses contains all valid artifact status values.
var ValidStatuses = []string{
	StatusDraft, StatusSubmitted, StatusApproved,
	StatusPublished, StatusChangesRequested,
}

// IsValidStatus checks if the given status is valid.
func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// ArtifactTag is a simple per-artifact label, cascade-deleted with the artifact.
type ArtifactTag struct {
	ID         uuid.UUID `json:"id"`
	ArtifactID uuid.UUID `json:"artifact_id"`
	Tag        string    `json:"tag"`
}
