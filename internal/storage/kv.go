package storage

import (
	"context"
	"encoding/json"
)

// KV is the persistence collaborator the ledger engine writes through. Values
// are opaque JSON documents; the engine owns their schema. Load omits missing
// keys so callers can apply their own defaults. Store must apply all supplied
// keys atomically.
type KV interface {
	Load(ctx context.Context, keys []string) (map[string]json.RawMessage, error)
	Store(ctx context.Context, values map[string]json.RawMessage) error
}
