package qcamap

import (
	"fmt"

	"github.com/qcatools/qcamap.go/pkg/constants"
)

// CategoryNotFoundError is returned when a category name has no match.
// It matches constants.ErrCategoryNotFound with errors.Is.
type CategoryNotFoundError struct {
	Name string
}

func (e *CategoryNotFoundError) Error() string {
	return fmt.Sprintf("category %q does not exist", e.Name)
}

func (e *CategoryNotFoundError) Unwrap() error {
	return constants.ErrCategoryNotFound
}
