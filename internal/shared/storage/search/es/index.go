package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"

	"docquery-backend/internal/shared/storage/search"
)

// Index implements search.Index backed by Elasticsearch.
type Index struct {
	client *elasticsearch.Client
	name   string
}

// New creates an Elasticsearch-backed index client.
func New(addresses []string, apiKey, name string) (*Index, error) {
	if len(addresses) == 0 {
		return nil, fmt.Errorf("elasticsearch addresses are required")
	}
	if name == "" {
		name = "documents"
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: addresses,
		APIKey:    apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("new elasticsearch client: %w", err)
	}

	return &Index{client: client, name: name}, nil
}

// Ensure creates the index with its mappings if it does not exist yet.
func (i *Index) Ensure(ctx context.Context) error {
	res, err := i.client.Indices.Exists([]string{i.name}, i.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("index exists %s: %w", i.name, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}
	if res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("index exists %s: unexpected status %d", i.name, res.StatusCode)
	}

	mappings := map[string]any{
		"mappings": map[string]any{
			"properties": map[string]any{
				"id":      map[string]any{"type": "text"},
				"title":   map[string]any{"type": "text"},
				"content": map[string]any{"type": "text"},
				"user_id": map[string]any{"type": "keyword"},
			},
		},
	}
	body, err := json.Marshal(mappings)
	if err != nil {
		return err
	}

	createRes, err := i.client.Indices.Create(
		i.name,
		i.client.Indices.Create.WithBody(bytes.NewReader(body)),
		i.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("create index %s: %w", i.name, err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		return fmt.Errorf("create index %s: status %s", i.name, createRes.Status())
	}
	return nil
}

// Upsert indexes one document entry, replacing any existing entry with the same id.
func (i *Index) Upsert(ctx context.Context, entry search.Entry) error {
	body, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	res, err := i.client.Index(
		i.name,
		bytes.NewReader(body),
		i.client.Index.WithDocumentID(entry.ID),
		i.client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index document id=%s: %w", entry.ID, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index document id=%s: status %s", entry.ID, res.Status())
	}
	return nil
}

// Search runs a boolean query and returns hits in the engine's relevance order.
func (i *Index) Search(ctx context.Context, query search.Query) ([]search.Hit, error) {
	body, err := json.Marshal(map[string]any{"query": query.DSL()})
	if err != nil {
		return nil, err
	}

	res, err := i.client.Search(
		i.client.Search.WithContext(ctx),
		i.client.Search.WithIndex(i.name),
		i.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("search index %s: %w", i.name, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search index %s: status %s", i.name, res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Score  float64      `json:"_score"`
				Source search.Entry `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("search index %s: decode response: %w", i.name, err)
	}

	hits := make([]search.Hit, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		hits = append(hits, search.Hit{
			ID:      h.Source.ID,
			Title:   h.Source.Title,
			Content: h.Source.Content,
			Score:   h.Score,
		})
	}
	return hits, nil
}

var _ search.Index = (*Index)(nil)
