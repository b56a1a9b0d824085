// Package kvstore defines the key-value blob store the document repository
// and the PIN guard persist into.
//
// Both consumers follow an explicit read-modify-write contract: they load a
// whole blob (the document list or the protection map), mutate it in memory
// and write the whole blob back. The store gives no transactional guarantee
// between Get and Set; concurrent writers to the same key are last-writer-wins.
// This is deliberate: the host is a single-user, single-process client with
// no concurrent writers across call sites.
package kvstore

import "context"

// Store is a keyed blob store. Get returns common.ErrorNotFound (wrapped)
// when the key is absent. Delete on an absent key is a no-op.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
