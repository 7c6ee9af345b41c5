package content

import "errors"

var (
	ErrPageNotFound    = errors.New("page not found")
	ErrServiceNotFound = errors.New("service card not found")
	ErrValidation      = errors.New("content validation failed")
)
