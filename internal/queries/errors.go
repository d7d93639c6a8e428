package queries

import "errors"

var (
	// ErrNoCorpus indicates there are no documents to answer from.
	ErrNoCorpus = errors.New("no documents available")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")
)
