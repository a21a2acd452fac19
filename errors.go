package assetserve

import "errors"

var (
	// ErrNotFound is returned when an asset does not exist
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned when request path validation fails
	ErrInvalidInput = errors.New("invalid input")
	// ErrOutsideRoot is returned when a resolved path escapes the static root
	ErrOutsideRoot = errors.New("path outside static root")
)
