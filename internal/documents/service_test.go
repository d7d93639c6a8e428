package documents

import (
	"context"
	"testing"
	"time"
)

func TestFilterByMetadataRequiresKeyPresence(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	svc := NewService(repo, nil)

	tagged := Document{
		ID:        "doc-1",
		UserID:    "user-1",
		Title:     "a.pdf",
		Metadata:  map[string]string{"label": ""},
		CreatedAt: time.Now().UTC(),
	}
	untagged := Document{
		ID:        "doc-2",
		UserID:    "user-1",
		Title:     "b.pdf",
		CreatedAt: time.Now().UTC(),
	}
	for _, doc := range []Document{tagged, untagged} {
		if err := repo.Create(ctx, doc); err != nil {
			t.Fatalf("Create %s: %v", doc.ID, err)
		}
	}

	// An empty value only matches documents that carry the key with an
	// empty value, never documents missing the key entirely.
	docs, err := svc.FilterByMetadata(ctx, "user-1", "label", "")
	if err != nil {
		t.Fatalf("FilterByMetadata: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != "doc-1" {
		t.Fatalf("expected only the tagged document, got %+v", docs)
	}

	docs, err = svc.FilterByMetadata(ctx, "user-1", "missing", "")
	if err != nil {
		t.Fatalf("FilterByMetadata: %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("expected no matches for an absent key, got %+v", docs)
	}
}

func TestFilterByMetadataMatchesValue(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	svc := NewService(repo, nil)

	docs := []Document{
		{ID: "doc-1", UserID: "user-1", Metadata: map[string]string{"source": "scan"}, CreatedAt: time.Now().UTC()},
		{ID: "doc-2", UserID: "user-1", Metadata: map[string]string{"source": "email"}, CreatedAt: time.Now().UTC()},
	}
	for _, doc := range docs {
		if err := repo.Create(ctx, doc); err != nil {
			t.Fatalf("Create %s: %v", doc.ID, err)
		}
	}

	matched, err := svc.FilterByMetadata(ctx, "user-1", "source", "scan")
	if err != nil {
		t.Fatalf("FilterByMetadata: %v", err)
	}
	if len(matched) != 1 || matched[0].ID != "doc-1" {
		t.Fatalf("expected only the scan document, got %+v", matched)
	}
}
