package documents

import "context"

// Repo defines persistence operations for documents. Reads and deletes are
// owner-scoped: a document owned by someone else behaves as nonexistent.
type Repo interface {
	Create(ctx context.Context, doc Document) error
	GetByID(ctx context.Context, userID, documentID string) (Document, error)
	Delete(ctx context.Context, userID, documentID string) error
	ListByOwner(ctx context.Context, userID string) ([]Document, error)

	// ListAll returns every document regardless of owner. It exists for the
	// semantic query corpus load, which is not owner-scoped.
	ListAll(ctx context.Context) ([]Document, error)
}
