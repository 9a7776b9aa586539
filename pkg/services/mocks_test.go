package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/sandip79g/DKN-Backend/pkg/apperrors"
	"github.com/sandip79g/DKN-Backend/pkg/models"
	"github.com/sandip79g/DKN-Backend/pkg/repositories"
)

// In-memory fakes mirroring the repository contracts, including the
// uniqueness behavior the schema enforces in production.

type fakeUserRepo struct {
	users map[uuid.UUID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*models.User)}
}

var _ repositories.UserRepository = (*fakeUserRepo)(nil)

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return apperrors.ErrEmailTaken
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type fakeArtifactRepo struct {
	artifacts map[uuid.UUID]*models.KnowledgeArtifact
	reviews   *fakeReviewRepo
}

func newFakeArtifactRepo(reviews *fakeReviewRepo) *fakeArtifactRepo {
	return &fakeArtifactRepo{
		artifacts: make(map[uuid.UUID]*models.KnowledgeArtifact),
		reviews:   reviews,
	}
}

var _ repositories.ArtifactRepository = (*fakeArtifactRepo)(nil)

func (f *fakeArtifactRepo) Create(_ context.Context, artifact *models.KnowledgeArtifact) error {
	if artifact.ID == uuid.Nil {
		artifact.ID = uuid.New()
	}
	f.artifacts[artifact.ID] = artifact
	return nil
}

func (f *fakeArtifactRepo) GetByID(_ context.Context, id uuid.UUID) (*models.KnowledgeArtifact, error) {
	artifact, ok := f.artifacts[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *artifact
	copied.Review = nil
	return &copied, nil
}

func (f *fakeArtifactRepo) Update(_ context.Context, artifact *models.KnowledgeArtifact) error {
	if _, ok := f.artifacts[artifact.ID]; !ok {
		return apperrors.ErrNotFound
	}
	copied := *artifact
	f.artifacts[artifact.ID] = &copied
	return nil
}

func (f *fakeArtifactRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.artifacts[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.artifacts, id)
	if f.reviews != nil {
		delete(f.reviews.byArtifact, id)
	}
	return nil
}

func (f *fakeArtifactRepo) ListPublished(_ context.Context) ([]*models.KnowledgeArtifact, error) {
	var out []*models.KnowledgeArtifact
	for _, a := range f.artifacts {
		if a.Status == models.StatusPublished {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeArtifactRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*models.KnowledgeArtifact, error) {
	var out []*models.KnowledgeArtifact
	for _, a := range f.artifacts {
		if a.CreatedBy == ownerID {
			copied := *a
			if f.reviews != nil {
				copied.Review = f.reviews.byArtifact[a.ID]
			}
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeArtifactRepo) ListPendingReview(_ context.Context) ([]*models.KnowledgeArtifact, error) {
	var out []*models.KnowledgeArtifact
	if f.reviews == nil {
		return out, nil
	}
	for artifactID, review := range f.reviews.byArtifact {
		if review.Decision == models.DecisionApproved {
			continue
		}
		if a, ok := f.artifacts[artifactID]; ok {
			copied := *a
			copied.Review = review
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeReviewRepo struct {
	byArtifact map[uuid.UUID]*models.ArtifactReviewStatus
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{byArtifact: make(map[uuid.UUID]*models.ArtifactReviewStatus)}
}

var _ repositories.ReviewRepository = (*fakeReviewRepo)(nil)

func (f *fakeReviewRepo) Create(_ context.Context, review *models.ArtifactReviewStatus) error {
	if _, ok := f.byArtifact[review.ArtifactID]; ok {
		return apperrors.ErrReviewAlreadyRequested
	}
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	if review.Decision == "" {
		review.Decision = models.DecisionPending
	}
	f.byArtifact[review.ArtifactID] = review
	return nil
}

func (f *fakeReviewRepo) GetByArtifact(_ context.Context, artifactID uuid.UUID) (*models.ArtifactReviewStatus, error) {
	review, ok := f.byArtifact[artifactID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *review
	return &copied, nil
}

func (f *fakeReviewRepo) ExistsForArtifact(_ context.Context, artifactID uuid.UUID) (bool, error) {
	_, ok := f.byArtifact[artifactID]
	return ok, nil
}

func (f *fakeReviewRepo) Update(_ context.Context, review *models.ArtifactReviewStatus) error {
	existing, ok := f.byArtifact[review.ArtifactID]
	if !ok || existing.ID != review.ID {
		return apperrors.ErrNotFound
	}
	copied := *review
	f.byArtifact[review.ArtifactID] = &copied
	return nil
}

type fakeRatingRepo struct {
	ratings []*models.Rating
}

var _ repositories.RatingRepository = (*fakeRatingRepo)(nil)

func (f *fakeRatingRepo) Create(_ context.Context, rating *models.Rating) error {
	if rating.ID == uuid.Nil {
		rating.ID = uuid.New()
	}
	f.ratings = append(f.ratings, rating)
	return nil
}

func (f *fakeRatingRepo) ListByArtifact(_ context.Context, artifactID uuid.UUID) ([]*models.Rating, error) {
	var out []*models.Rating
	for _, r := range f.ratings {
		if r.ArtifactID == artifactID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeTagRepo struct {
	tags map[uuid.UUID]*models.ArtifactTag
}

func newFakeTagRepo() *fakeTagRepo {
	return &fakeTagRepo{tags: make(map[uuid.UUID]*models.ArtifactTag)}
}

var _ repositories.TagRepository = (*fakeTagRepo)(nil)

func (f *fakeTagRepo) Create(_ context.Context, tag *models.ArtifactTag) error {
	if tag.ID == uuid.Nil {
		tag.ID = uuid.New()
	}
	f.tags[tag.ID] = tag
	return nil
}

func (f *fakeTagRepo) ListByArtifact(_ context.Context, artifactID uuid.UUID) ([]*models.ArtifactTag, error) {
	var out []*models.ArtifactTag
	for _, tag := range f.tags {
		if tag.ArtifactID == artifactID {
			out = append(out, tag)
		}
	}
	return out, nil
}

func (f *fakeTagRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.tags[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.tags, id)
	return nil
}
