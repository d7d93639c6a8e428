package queries

import (
	"context"
	"fmt"

	"docquery-backend/internal/documents"
	"docquery-backend/internal/llm"
	"docquery-backend/internal/shared/metrics"
	"docquery-backend/internal/shared/storage/search"
	"docquery-backend/internal/shared/telemetry"
)

// retrievalTopK bounds how many document texts are handed to the generator.
const retrievalTopK = 4

// Service answers lexical searches against the full-text index and semantic
// questions over the document corpus.
type Service struct {
	repo      documents.Repo
	index     search.Index
	embedder  llm.Embedder
	generator llm.Generator
}

func NewService(repo documents.Repo, index search.Index, embedder llm.Embedder, generator llm.Generator) *Service {
	return &Service{repo: repo, index: index, embedder: embedder, generator: generator}
}

// SearchContent finds documents whose extracted text matches the query.
func (s *Service) SearchContent(ctx context.Context, q string) ([]search.Hit, error) {
	if q == "" {
		return nil, fmt.Errorf("%w: query is required", ErrInvalidInput)
	}
	return s.index.Search(ctx, search.Match("content", q))
}

// SearchTitle finds documents whose title matches the query.
func (s *Service) SearchTitle(ctx context.Context, q string) ([]search.Hit, error) {
	if q == "" {
		return nil, fmt.Errorf("%w: query is required", ErrInvalidInput)
	}
	return s.index.Search(ctx, search.Match("title", q))
}

// SearchOwned finds the caller's documents whose extracted text matches the
// query, combining a relevance match with an exact owner filter.
func (s *Service) SearchOwned(ctx context.Context, userID, q string) ([]search.Hit, error) {
	if q == "" {
		return nil, fmt.Errorf("%w: query is required", ErrInvalidInput)
	}
	return s.index.Search(ctx, search.And(
		search.Match("content", q),
		search.Term("user_id", userID),
	))
}

// Ask answers a natural-language question grounded in the stored documents.
//
// The corpus covers every document regardless of owner, and it is embedded
// from scratch on every call: there is no persistent semantic index. Both
// behaviors match the system this replaces and are kept deliberately.
func (s *Service) Ask(ctx context.Context, question string) (string, error) {
	if question == "" {
		return "", fmt.Errorf("%w: question is required", ErrInvalidInput)
	}

	metrics.IncSemanticQuery()

	docs, err := s.repo.ListAll(ctx)
	if err != nil {
		return "", fmt.Errorf("load corpus: %w", err)
	}
	if len(docs) == 0 {
		return "", ErrNoCorpus
	}

	texts := make([]string, 0, len(docs))
	for _, doc := range docs {
		texts = append(texts, doc.Content)
	}

	vectors, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		return "", fmt.Errorf("embed corpus: %w", err)
	}
	questionVectors, err := s.embedder.Embed(ctx, []string{question})
	if err != nil {
		return "", fmt.Errorf("embed question: %w", err)
	}

	store := newCorpusStore(texts, vectors)
	contexts := store.topK(questionVectors[0], retrievalTopK)

	answer, err := s.generator.Answer(ctx, question, contexts)
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}

	telemetry.Info("query.answered", map[string]any{
		"corpus_size":    len(docs),
		"contexts_used":  len(contexts),
		"question_chars": len(question),
	})
	return answer, nil
}
