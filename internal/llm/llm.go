package llm

import (
	"context"
	"errors"
)

// Embedder turns texts into dense vectors for similarity retrieval.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

// Generator produces a grounded answer to a question given retrieved context.
type Generator interface {
	Answer(ctx context.Context, question string, contexts []string) (string, error)
}

// ErrNotConfigured is returned by the placeholder implementations.
var ErrNotConfigured = errors.New("llm backend not configured")

// Placeholder is a stub implementation used when no API key is present.
type Placeholder struct{}

// Embed returns ErrNotConfigured.
func (Placeholder) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	_ = ctx
	_ = texts
	return nil, ErrNotConfigured
}

// Answer returns ErrNotConfigured.
func (Placeholder) Answer(ctx context.Context, question string, contexts []string) (string, error) {
	_ = ctx
	_ = question
	_ = contexts
	return "", ErrNotConfigured
}
