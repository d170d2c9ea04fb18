package storage

import (
	"context"
	"sync"

	"github.com/patrickmn/go-cache"
)

// MemoryStore is a process-local Store backed by go-cache with no
// expiration. It is used for ":memory:" sessions and in tests.
type MemoryStore struct {
	mu    sync.Mutex
	items *cache.Cache
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: cache.New(cache.NoExpiration, 0)}
}

type memoryKV struct {
	items *cache.Cache
}

func (m memoryKV) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.items.Get(key)
	if !ok {
		return nil, nil
	}
	return clone(v.([]byte)), nil
}

func (m memoryKV) Set(_ context.Context, key string, value []byte) error {
	m.items.Set(key, clone(value), cache.NoExpiration)
	return nil
}

func (m memoryKV) Remove(_ context.Context, key string) error {
	m.items.Delete(key)
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return memoryKV{items: s.items}.Get(ctx, key)
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return memoryKV{items: s.items}.Set(ctx, key, value)
}

func (s *MemoryStore) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return memoryKV{items: s.items}.Remove(ctx, key)
}

// journalKV remembers the first prior value of every key it touches so a
// failed batch can be undone.
type journalKV struct {
	memoryKV
	prior map[string][]byte
	seen  map[string]bool
}

func (j *journalKV) remember(key string) {
	if j.seen[key] {
		return
	}
	j.seen[key] = true
	if v, ok := j.items.Get(key); ok {
		j.prior[key] = v.([]byte)
	}
}

func (j *journalKV) Set(ctx context.Context, key string, value []byte) error {
	j.remember(key)
	return j.memoryKV.Set(ctx, key, value)
}

func (j *journalKV) Remove(ctx context.Context, key string) error {
	j.remember(key)
	return j.memoryKV.Remove(ctx, key)
}

func (j *journalKV) rollback() {
	for key := range j.seen {
		if v, ok := j.prior[key]; ok {
			j.items.Set(key, v, cache.NoExpiration)
		} else {
			j.items.Delete(key)
		}
	}
}

// Update holds the store lock for the whole batch and restores every
// touched key if fn fails or panics.
func (s *MemoryStore) Update(ctx context.Context, fn func(ctx context.Context, tx KV) error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	j := &journalKV{memoryKV: memoryKV{items: s.items}, prior: map[string][]byte{}, seen: map[string]bool{}}
	defer func() {
		if p := recover(); p != nil {
			j.rollback()
			panic(p)
		}
		if err != nil {
			j.rollback()
		}
	}()

	return fn(ctx, j)
}

func (s *MemoryStore) Close() error {
	s.items.Flush()
	return nil
}

func clone(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return append([]byte(nil), b...)
}
