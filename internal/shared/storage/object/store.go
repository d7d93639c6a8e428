package object

import (
	"context"
	"io"
)

// Store defines the contract for saving and retrieving binary objects.
// Put writes the reader contents under key and returns a stable, externally
// dereferenceable locator URL. Keys are caller-chosen; writing an existing
// key overwrites the previous object.
type Store interface {
	Put(ctx context.Context, key string, contentType string, r io.Reader) (locator string, err error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}
