package service

import "errors"

// ErrNotFound is returned when no recipe exists for a given id.
var ErrNotFound = errors.New("recette non trouvée")

// ValidationError reports a missing or invalid field on a write request.
// Handlers map it to a 400 response.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UploadError reports a rejected image upload (wrong type or oversize).
type UploadError struct {
	Message string
}

func (e *UploadError) Error() string {
	return e.Message
}
