package gallery

import "errors"

var (
	// ErrPathNotFound means every candidate spelling of the folder path
	// came back 404.
	ErrPathNotFound = errors.New("media folder not found")
	// ErrUpstream covers drive-API transport/auth/server failures,
	// kept distinct from not-found so callers never mask an outage as
	// a missing folder.
	ErrUpstream = errors.New("media source unavailable")
)
