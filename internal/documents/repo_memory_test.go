package documents

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryRepoOwnershipIsolation(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	doc := Document{
		ID:        "doc-1",
		UserID:    "user-1",
		Title:     "a.pdf",
		Content:   "alpha",
		CreatedAt: time.Now().UTC(),
	}
	if err := repo.Create(ctx, doc); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// The owner can read and delete; anyone else sees not-found.
	if _, err := repo.GetByID(ctx, "user-2", "doc-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign owner, got %v", err)
	}
	if err := repo.Delete(ctx, "user-2", "doc-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting foreign document, got %v", err)
	}
	if _, err := repo.GetByID(ctx, "user-1", "doc-1"); err != nil {
		t.Fatalf("owner read failed: %v", err)
	}
	if err := repo.Delete(ctx, "user-1", "doc-1"); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if _, err := repo.GetByID(ctx, "user-1", "doc-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMemoryRepoListByOwnerNewestFirst(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	base := time.Now().UTC()

	for i, id := range []string{"doc-1", "doc-2", "doc-3"} {
		doc := Document{
			ID:        id,
			UserID:    "user-1",
			Title:     id + ".pdf",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Create(ctx, doc); err != nil {
			t.Fatalf("Create %s: %v", id, err)
		}
	}
	other := Document{ID: "doc-x", UserID: "user-2", Title: "x.pdf", CreatedAt: base}
	if err := repo.Create(ctx, other); err != nil {
		t.Fatalf("Create doc-x: %v", err)
	}

	docs, err := repo.ListByOwner(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(docs))
	}
	for i, want := range []string{"doc-3", "doc-2", "doc-1"} {
		if docs[i].ID != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, docs[i].ID)
		}
	}

	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 documents across owners, got %d", len(all))
	}
}

func TestMemoryRepoCreateCopiesMetadata(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	metadata := map[string]string{MetadataKeyFileURL: "https://x/a.pdf"}
	doc := Document{ID: "doc-1", UserID: "user-1", Title: "a.pdf", Metadata: metadata, CreatedAt: time.Now().UTC()}
	if err := repo.Create(ctx, doc); err != nil {
		t.Fatalf("Create: %v", err)
	}

	metadata[MetadataKeyFileURL] = "mutated"

	stored, err := repo.GetByID(ctx, "user-1", "doc-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Metadata[MetadataKeyFileURL] != "https://x/a.pdf" {
		t.Fatalf("stored metadata aliased the caller's map: %+v", stored.Metadata)
	}
}
