// Package storage provides the durable key-value stores the ledger persists
// into. Every save replaces the whole value for a key; there are no partial
// or delta writes.
package storage

import "context"

// KV is the durable storage contract. Load reports ok=false when the key has
// never been written, which is not an error.
type KV interface {
	Load(ctx context.Context, key string) (value string, ok bool, err error)
	Save(ctx context.Context, key, value string) error
	Close() error
}
