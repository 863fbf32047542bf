package errors

import "errors"

var (
	ErrInvalidUserID      = errors.New("invalid user id")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrMembershipNotFound = errors.New("membership not found")
)
