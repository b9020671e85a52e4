package settings

import "context"

// Entry is one persisted setting. Values are the encoded setting: plain
// wire strings for language and units, JSON for the location.
type Entry struct {
	Key   string
	Value []byte
}

// Store persists settings entries. Implementations do no caching; the
// Repository keeps the live values.
type Store interface {
	// List returns all keys present in the store.
	List(ctx context.Context) ([]string, error)
	// Load retrieves entries for keys. A missing key fails with ErrKeyNotFound.
	Load(ctx context.Context, keys ...string) ([]Entry, error)
	// Save creates or overwrites entries.
	Save(ctx context.Context, entries ...Entry) error
	// Delete removes entries. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}
