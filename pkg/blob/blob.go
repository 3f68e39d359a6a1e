package blob

import "context"

// Store is the markup storage contract. Keys are opaque to callers; the
// service layer derives them from tenant and document IDs.
type Store interface {
	// Get returns the markup stored under key.
	Get(ctx context.Context, key string) (string, error)
	// Put stores markup under key, overwriting any previous content.
	Put(ctx context.Context, key, content string) error
	// Delete removes the markup stored under key. Deleting a missing key is
	// not an error.
	Delete(ctx context.Context, key string) error
}
