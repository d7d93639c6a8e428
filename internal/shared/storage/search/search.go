package search

import "context"

// Entry is the denormalized projection of a document kept in the search
// index. The metadata store stays authoritative; entries here are a derived,
// best-effort copy.
type Entry struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	UserID  string `json:"user_id"`
}

// Hit is one ranked search result. Score comes from the underlying engine's
// relevance scoring; callers do not re-rank.
type Hit struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// Index abstracts the full-text search engine. Upserts are eventually
// consistent: a write may not be visible to an immediately following Search.
type Index interface {
	Ensure(ctx context.Context) error
	Upsert(ctx context.Context, entry Entry) error
	Search(ctx context.Context, query Query) ([]Hit, error)
}
