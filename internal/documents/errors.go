package documents

import "errors"

var (
	// ErrNotFound indicates the document does not exist or is not owned by
	// the caller; the two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("document not found")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")
)
