package impl

import "errors"

var (
	ErrEmptyCredential = errors.New("empty credential(s)")
	ErrInvalidEmail    = errors.New("invalid email address")
)
