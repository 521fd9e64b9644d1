package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrPredictionsLocked     = errors.New("predictions are locked")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
