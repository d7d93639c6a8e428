package documents

import (
	"context"
	"fmt"
)

// Service exposes document operations to handlers. Ingestion is delegated
// to the pipeline; everything else is owner-scoped repository access.
type Service struct {
	repo     Repo
	pipeline *Pipeline
}

func NewService(repo Repo, pipeline *Pipeline) *Service {
	return &Service{repo: repo, pipeline: pipeline}
}

// Ingest runs the full upload pipeline for one file.
func (s *Service) Ingest(ctx context.Context, data []byte, filename, contentType, userID string) (IngestResult, error) {
	return s.pipeline.Ingest(ctx, data, filename, contentType, userID)
}

// Get returns a document owned by the caller.
func (s *Service) Get(ctx context.Context, userID, documentID string) (Document, error) {
	if documentID == "" {
		return Document{}, fmt.Errorf("%w: document id is required", ErrInvalidInput)
	}
	return s.repo.GetByID(ctx, userID, documentID)
}

// Delete removes a document row owned by the caller. The stored binary and
// any search index entry are left in place.
func (s *Service) Delete(ctx context.Context, userID, documentID string) error {
	if documentID == "" {
		return fmt.Errorf("%w: document id is required", ErrInvalidInput)
	}
	return s.repo.Delete(ctx, userID, documentID)
}

// List returns the caller's documents, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]Document, error) {
	return s.repo.ListByOwner(ctx, userID)
}

// FilterByMetadata returns the caller's documents whose metadata holds the
// exact key/value pair. Filtering happens in process over the owner's set.
func (s *Service) FilterByMetadata(ctx context.Context, userID, key, value string) ([]Document, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: metadata key is required", ErrInvalidInput)
	}
	docs, err := s.repo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	filtered := make([]Document, 0, len(docs))
	for _, doc := range docs {
		// A document without the key never matches, even for an empty value.
		if stored, ok := doc.Metadata[key]; ok && stored == value {
			filtered = append(filtered, doc)
		}
	}
	return filtered, nil
}
