package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrScoringClosed         = errors.New("scoring window is not open")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
