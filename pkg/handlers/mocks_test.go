package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/sandip79g/DKN-Backend/pkg/auth"
	"github.com/sandip79g/DKN-Backend/pkg/models"
	"github.com/sandip79g/DKN-Backend/pkg/services"
)

// Function-field mocks so each test overrides only what it exercises.

type mockAccountService struct {
	registerFunc func(ctx context.Context, input services.RegisterInput) (*models.User, error)
	loginFunc    func(ctx context.Context, email, password string) (*services.TokenPair, error)
	refreshFunc  func(ctx context.Context, refreshToken string) (*services.TokenPair, error)
}

var _ services.AccountService = (*mockAccountService)(nil)

func (m *mockAccountService) Register(ctx context.Context, input services.RegisterInput) (*models.User, error) {
	return m.registerFunc(ctx, input)
}

func (m *mockAccountService) Login(ctx context.Context, email, password string) (*services.TokenPair, error) {
	return m.loginFunc(ctx, email, password)
}

func (m *mockAccountService) Refresh(ctx context.Context, refreshToken string) (*services.TokenPair, error) {
	return m.refreshFunc(ctx, refreshToken)
}

type mockArtifactService struct {
	createFunc        func(ctx context.Context, owner *models.User, input services.ArtifactInput) (*models.KnowledgeArtifact, error)
	getFunc           func(ctx context.Context, id uuid.UUID) (*models.KnowledgeArtifact, error)
	updateFunc        func(ctx context.Context, user *models.User, id uuid.UUID, input services.ArtifactInput) (*models.KnowledgeArtifact, error)
	deleteFunc        func(ctx context.Context, user *models.User, id uuid.UUID) error
	publishFunc       func(ctx context.Context, user *models.User, id uuid.UUID) error
	requestReviewFunc func(ctx context.Context, user *models.User, id uuid.UUID) (*models.ArtifactReviewStatus, error)
	decideReviewFunc  func(ctx context.Context, reviewer *models.User, artifactID uuid.UUID, decision, comments string) (*models.ArtifactReviewStatus, error)
	listPublishedFunc func(ctx context.Context) ([]*models.KnowledgeArtifact, error)
	listMineFunc      func(ctx context.Context, owner *models.User) ([]*models.KnowledgeArtifact, error)
	listQueueFunc     func(ctx context.Context) ([]*models.KnowledgeArtifact, error)
	addTagFunc        func(ctx context.Context, user *models.User, artifactID uuid.UUID, tag string) (*models.ArtifactTag, error)
	listTagsFunc      func(ctx context.Context, artifactID uuid.UUID) ([]*models.ArtifactTag, error)
	removeTagFunc     func(ctx context.Context, user *models.User, artifactID, tagID uuid.UUID) error
}

var _ services.ArtifactService = (*mockArtifactService)(nil)

func (m *mockArtifactService) Create(ctx context.Context, owner *models.User, input services.ArtifactInput) (*models.KnowledgeArtifact, error) {
	return m.createFunc(ctx, owner, input)
}

func (m *mockArtifactService) Get(ctx context.Context, id uuid.UUID) (*models.KnowledgeArtifact, error) {
	return m.getFunc(ctx, id)
}

func (m *mockArtifactService) Update(ctx context.Context, user *models.User, id uuid.UUID, input services.ArtifactInput) (*models.KnowledgeArtifact, error) {
	return m.updateFunc(ctx, user, id, input)
}

func (m *mockArtifactService) Delete(ctx context.Context, user *models.User, id uuid.UUID) error {
	return m.deleteFunc(ctx, user, id)
}

func (m *mockArtifactService) Publish(ctx context.Context, user *models.User, id uuid.UUID) error {
	return m.publishFunc(ctx, user, id)
}

func (m *mockArtifactService) RequestReview(ctx context.Context, user *models.User, id uuid.UUID) (*models.ArtifactReviewStatus, error) {
	return m.requestReviewFunc(ctx, user, id)
}

func (m *mockArtifactService) DecideReview(ctx context.Context, reviewer *models.User, artifactID uuid.UUID, decision, comments string) (*models.ArtifactReviewStatus, error) {
	return m.decideReviewFunc(ctx, reviewer, artifactID, decision, comments)
}

func (m *mockArtifactService) ListPublished(ctx context.Context) ([]*models.KnowledgeArtifact, error) {
	return m.listPublishedFunc(ctx)
}

func (m *mockArtifactService) ListMine(ctx context.Context, owner *models.User) ([]*models.KnowledgeArtifact, error) {
	return m.listMineFunc(ctx, owner)
}

func (m *mockArtifactService) ListReviewQueue(ctx context.Context) ([]*models.KnowledgeArtifact, error) {
	return m.listQueueFunc(ctx)
}

func (m *mockArtifactService) AddTag(ctx context.Context, user *models.User, artifactID uuid.UUID, tag string) (*models.ArtifactTag, error) {
	return m.addTagFunc(ctx, user, artifactID, tag)
}

func (m *mockArtifactService) ListTags(ctx context.Context, artifactID uuid.UUID) ([]*models.ArtifactTag, error) {
	return m.listTagsFunc(ctx, artifactID)
}

func (m *mockArtifactService) RemoveTag(ctx context.Context, user *models.User, artifactID, tagID uuid.UUID) error {
	return m.removeTagFunc(ctx, user, artifactID, tagID)
}

type mockRatingService struct {
	rateFunc func(ctx context.Context, user *models.User, artifactID uuid.UUID, score int) (*models.Rating, error)
	listFunc func(ctx context.Context, artifactID uuid.UUID) ([]*models.Rating, error)
}

var _ services.RatingService = (*mockRatingService)(nil)

func (m *mockRatingService) Rate(ctx context.Context, user *models.User, artifactID uuid.UUID, score int) (*models.Rating, error) {
	return m.rateFunc(ctx, user, artifactID, score)
}

func (m *mockRatingService) ListForArtifact(ctx context.Context, artifactID uuid.UUID) ([]*models.Rating, error) {
	return m.listFunc(ctx, artifactID)
}

// withUser injects the user into the request context the way RequireAuth does.
func withUser(r *http.Request, user *models.User) *http.Request {
	ctx := context.WithValue(r.Context(), auth.UserKey, user)
	return r.WithContext(ctx)
}
