package storage

import "context"

// MemoryDSN selects the in-memory store.
const MemoryDSN = ":memory:"

// Open returns the store selected by path: MemoryDSN gives a MemoryStore,
// anything else a migrated SQLite file.
func Open(ctx context.Context, path string) (Store, error) {
	if path == MemoryDSN {
		return NewMemoryStore(), nil
	}
	return OpenSQLite(ctx, path)
}
