package errors

import "errors"

var (
	ErrNoActiveRate = errors.New("no active hourly rate configured")
)
