package apperrors

import "errors"

var (
	ErrNotFound               = errors.New("not found")
	ErrEmailTaken             = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrForbidden              = errors.New("forbidden")
	ErrAlreadyPublished       = errors.New("artifact is already published")
	ErrReviewAlreadyRequested = errors.New("review already requested for this artifact")
	ErrReviewNotFound         = errors.New("no review request found for this artifact")
	ErrInvalidStatus          = errors.New("invalid artifact status")
	ErrInvalidDecision        = errors.New("invalid review decision")
	ErrInvalidRole            = errors.New("invalid role")
	ErrInvalidRegion          = errors.New("invalid region")
	ErrInvalidScore           = errors.New("score out of range")
)
