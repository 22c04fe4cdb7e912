package ports

import "context"

// KeyValueStore is the persistence port for the two durable cross-reload
// keys: the session identity and the per-user UI preferences. Get returns
// domain.ErrKeyNotFound for a missing key.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
