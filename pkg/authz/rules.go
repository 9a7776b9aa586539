// Package authz holds the pure authorization predicates for artifact and
// review operations. Handlers call these at the top of each operation and
// return Forbidden on failure; no decorator indirection.
package authz

import "github.com/sandip79g/DKN-Backend/pkg/models"

// IsOwner reports whether the user created the artifact. Only owners may
// update, delete, publish or request review.
func IsOwner(user *models.User, artifact *models.KnowledgeArtifact) bool {
	if user == nil || artifact == nil {
		return false
	}
	return artifact.CreatedBy == user.ID
}

// IsReviewer reports whether the user may act on review requests.
// Knowledge champions and admins are reviewers.
func IsReviewer(user *models.User) bool {
	if user == nil {
		return false
	}
	return user.Role == models.RoleKnowledgeChampion || user.Role == models.RoleAdmin
}
