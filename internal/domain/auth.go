package domain

import "errors"

// Sentinel errors shared between the repository and service layers.
var (
	ErrDuplicateEmail = errors.New("email already registered")
	ErrUserNotFound   = errors.New("user not found")
)
