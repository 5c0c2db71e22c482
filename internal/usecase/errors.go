package usecase

import "errors"

// Sentinel errors returned by services. The HTTP layer maps them onto
// response codes; callers match with errors.Is and wrap with context via
// fmt.Errorf("%w: ...").
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
