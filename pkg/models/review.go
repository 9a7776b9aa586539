package models

import (
	"time"

	"github.com/google/uuid"
)

// ArtifactReviewStatus tracks a reviewer's decision on an artifact.
// At most one review record exists per artifact, enforced by a unique
// index on artifact_id. ReviewedBy stays nil until a reviewer decides.
type ArtifactReviewStatus struct {
	ID          uuid.UUID  `json:"id"`
	ArtifactID  uuid.UUID  `json:"artifact_id"`
	Decision    string     `json:"decision"`
	Comments    string     `json:"comments,omitempty"`
	ReviewedBy  *uuid.UUID `json:"reviewed_by,omitempty"`
	SubmittedOn time.Time  `json:"submitted_on"`
}

// Review decision constants.
const (
	DecisionPending          = "PENDING"
	DecisionSubmitted        = "SUBMITTED"
	DecisionApproved         = "APPROVED"
	DecisionChangesRequested = "CHANGES_REQUESTED"
)

// ValidDecisions contains all valid review decision values.
var ValidDecisions = []string{
	DecisionPending, DecisionSubmitted,
	DecisionApproved, DecisionChangesRequested,
}

// IsValidDecision checks if the given decision is valid.
func IsValidDecision(decision string) bool {
	for _, d := range ValidDecisions {
		if d == decision {
			return true
		}
	}
	return false
}
