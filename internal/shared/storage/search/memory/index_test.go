package memory

import (
	"context"
	"testing"

	"docquery-backend/internal/shared/storage/search"
)

func seedIndex(t *testing.T) *Index {
	t.Helper()
	idx := New()
	ctx := context.Background()
	entries := []search.Entry{
		{ID: "1", Title: "alpha.pdf", Content: "the quick brown fox", UserID: "user-a"},
		{ID: "2", Title: "beta.pdf", Content: "quick quick quick", UserID: "user-b"},
		{ID: "3", Title: "gamma.pdf", Content: "slow green turtle", UserID: "user-a"},
	}
	for _, e := range entries {
		if err := idx.Upsert(ctx, e); err != nil {
			t.Fatalf("Upsert(%s): %v", e.ID, err)
		}
	}
	return idx
}

func TestSearchContentMatchRanksByFrequency(t *testing.T) {
	idx := seedIndex(t)

	hits, err := idx.Search(context.Background(), search.Match("content", "quick"))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
	if hits[0].ID != "2" || hits[1].ID != "1" {
		t.Fatalf("unexpected order: %s, %s", hits[0].ID, hits[1].ID)
	}
	if hits[0].Score <= hits[1].Score {
		t.Fatalf("expected descending scores, got %f then %f", hits[0].Score, hits[1].Score)
	}
}

func TestSearchTitleMatch(t *testing.T) {
	idx := seedIndex(t)

	hits, err := idx.Search(context.Background(), search.Match("title", "beta.pdf"))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 || hits[0].ID != "2" {
		t.Fatalf("unexpected hits: %+v", hits)
	}
}

func TestSearchBooleanOwnerFilter(t *testing.T) {
	idx := seedIndex(t)

	query := search.And(search.Match("content", "quick"), search.Term("user_id", "user-a"))
	hits, err := idx.Search(context.Background(), query)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 || hits[0].ID != "1" {
		t.Fatalf("expected only user-a's match, got %+v", hits)
	}
}

func TestUpsertReplacesExistingEntry(t *testing.T) {
	idx := seedIndex(t)
	ctx := context.Background()

	if err := idx.Upsert(ctx, search.Entry{ID: "1", Title: "alpha.pdf", Content: "rewritten", UserID: "user-a"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	hits, err := idx.Search(ctx, search.Match("content", "fox"))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 0 {
		t.Fatalf("expected old content gone, got %+v", hits)
	}
}
