package constants

import "errors"

// Errors
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrNotImplemented   = errors.New("not implemented")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrAlreadyLoaded    = errors.New("project already loaded")
	ErrNotLoaded        = errors.New("project not loaded")
	ErrNoLocationMatch  = errors.New("location does not match the coding view")
	ErrInvalidResponse  = errors.New("invalid response")
)

var (
	ErrNoBaseURL     = errors.New("base url not set")
	ErrNoMarshaler   = errors.New("marshaler is not set")
	ErrNoUnmarshaler = errors.New("unmarshaler is not set")
)
