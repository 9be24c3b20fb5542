package errors

import "errors"

var (
	ErrNotFound = errors.New("tournament not found")

	ErrInvalidID = errors.New("invalid tournament ID format")
)
