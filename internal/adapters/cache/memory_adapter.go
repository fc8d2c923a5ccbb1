package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/johanfuertv/WhereToGo-App/internal/domain/providers"
)

const defaultMemoryEntries = 4096

// MemoryAdapter implements CacheProvider with a bounded in-process LRU. It is
// used when Redis is disabled so services keep one code path.
type MemoryAdapter struct {
	lru *expirable.LRU[string, memoryEntry]
	now func() time.Time
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewMemoryAdapter creates an in-process cache holding up to size entries.
func NewMemoryAdapter(size int) providers.CacheProvider {
	if size <= 0 {
		size = defaultMemoryEntries
	}
	return &MemoryAdapter{
		lru: expirable.NewLRU[string, memoryEntry](size, nil, 0),
		now: time.Now,
	}
}

func (a *MemoryAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	entry, ok := a.lookup(key)
	if !ok {
		return nil, providers.ErrCacheMiss
	}
	out := make([]byte, len(entry.value))
	copy(out, entry.value)
	return out, nil
}

// Set stores value; expirationSeconds <= 0 keeps it until evicted.
func (a *MemoryAdapter) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	entry := memoryEntry{value: append([]byte(nil), value...)}
	if expirationSeconds > 0 {
		entry.expiresAt = a.now().Add(time.Duration(expirationSeconds) * time.Second)
	}
	a.lru.Add(key, entry)
	return nil
}

func (a *MemoryAdapter) Delete(ctx context.Context, key string) error {
	a.lru.Remove(key)
	return nil
}

func (a *MemoryAdapter) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := a.lookup(key)
	return ok, nil
}

// lookup enforces per-entry expiry; the LRU itself only bounds size.
func (a *MemoryAdapter) lookup(key string) (memoryEntry, bool) {
	entry, ok := a.lru.Get(key)
	if !ok {
		return memoryEntry{}, false
	}
	if !entry.expiresAt.IsZero() && !a.now().Before(entry.expiresAt) {
		a.lru.Remove(key)
		return memoryEntry{}, false
	}
	return entry, true
}
