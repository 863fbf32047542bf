package errors

import "errors"

var (
	ErrUnauthenticated      = errors.New("not authenticated")
	ErrForbidden            = errors.New("not authorized")
	ErrInvalidRequest       = errors.New("organization id is required")
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrProjectNotFound      = errors.New("project not found")
	ErrStoreFailure         = errors.New("store failure")
)
