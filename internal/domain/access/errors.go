package access

import "errors"

var (
	ErrNotFound            = errors.New("access code not found")
	ErrValidation          = errors.New("access code is invalid")
	ErrCodeExists          = errors.New("access code already exists")
	ErrGenerationExhausted = errors.New("could not generate a unique access code")
	ErrStoreUnavailable    = errors.New("registry store unavailable")
)
