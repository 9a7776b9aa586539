package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/sandip79g/DKN-Backend/pkg/models"
)

func TestIsOwner(t *testing.T) {
	ownerID := uuid.New()
	artifact := &models.KnowledgeArtifact{ID: uuid.New(), CreatedBy: ownerID}

	assert.True(t, IsOwner(&models.User{ID: ownerID}, artifact))
	assert.False(t, IsOwner(&models.User{ID: uuid.New()}, artifact))
	assert.False(t, IsOwner(nil, artifact))
	assert.False(t, IsOwner(&models.User{ID: ownerID}, nil))
}

func TestIsReviewer(t *testing.T) {
	tests := []struct {
		role string
		want bool
	}{
		{models.RoleKnowledgeChampion, true},
		{models.RoleAdmin, true},
		{models.RoleConsultant, false},
		{models.RoleGovernanceCouncil, false},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			assert.Equal(t, tt.want, IsReviewer(&models.User{Role: tt.role}))
		})
	}

	assert.False(t, IsReviewer(nil))
}
