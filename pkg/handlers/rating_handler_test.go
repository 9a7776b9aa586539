package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/sandip79g/DKN-Backend/pkg/apperrors"
	"github.com/sandip79g/DKN-Backend/pkg/models"
)

func TestRate_Created(t *testing.T) {
	user := &models.User{ID: uuid.New()}
	artifactID := uuid.New()

	ratings := &mockRatingService{
		rateFunc: func(_ context.Context, u *models.User, id uuid.UUID, score int) (*models.Rating, error) {
			assert.Equal(t, user.ID, u.ID)
			assert.Equal(t, artifactID, id)
			assert.Equal(t, 5, score)
			return &models.Rating{ID: uuid.New(), ArtifactID: id, UserID: u.ID, Score: score}, nil
		},
	}
	h := NewRatingHandler(ratings, zap.NewNop())

	req := withUser(httptest.NewRequest(http.MethodPost, "/api/rate-artifact/"+artifactID.String(),
		strings.NewReader(`{"score":5}`)), user)
	req.SetPathValue("id", artifactID.String())
	rec := httptest.NewRecorder()

	h.Rate(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"score":5`)
}

func TestRate_InvalidScore(t *testing.T) {
	ratings := &mockRatingService{
		rateFunc: func(_ context.Context, _ *models.User, _ uuid.UUID, _ int) (*models.Rating, error) {
			return nil, apperrors.ErrInvalidScore
		},
	}
	h := NewRatingHandler(ratings, zap.NewNop())

	id := uuid.New()
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/rate-artifact/"+id.String(),
		strings.NewReader(`{"score":11}`)), &models.User{ID: uuid.New()})
	req.SetPathValue("id", id.String())
	rec := httptest.NewRecorder()

	h.Rate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Score must be between 1 and 5")
}

func TestRate_UnknownArtifact(t *testing.T) {
	ratings := &mockRatingService{
		rateFunc: func(_ context.Context, _ *models.User, _ uuid.UUID, _ int) (*models.Rating, error) {
			return nil, apperrors.ErrNotFound
		},
	}
	h := NewRatingHandler(ratings, zap.NewNop())

	id := uuid.New()
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/rate-artifact/"+id.String(),
		strings.NewReader(`{"score":3}`)), &models.User{ID: uuid.New()})
	req.SetPathValue("id", id.String())
	rec := httptest.NewRecorder()

	h.Rate(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListRatings(t *testing.T) {
	artifactID := uuid.New()
	ratings := &mockRatingService{
		listFunc: func(_ context.Context, id uuid.UUID) ([]*models.Rating, error) {
			assert.Equal(t, artifactID, id)
			return []*models.Rating{
				{ID: uuid.New(), ArtifactID: id, UserID: uuid.New(), Score: 4},
				{ID: uuid.New(), ArtifactID: id, UserID: uuid.New(), Score: 2},
			}, nil
		},
	}
	h := NewRatingHandler(ratings, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/artifacts/"+artifactID.String()+"/ratings", nil)
	req.SetPathValue("id", artifactID.String())
	rec := httptest.NewRecorder()

	h.List(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"score":4`)
	assert.Contains(t, rec.Body.String(), `"score":2`)
}
