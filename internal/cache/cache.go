package cache

import (
	"context"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	gocache "github.com/patrickmn/go-cache"
)

// Store is a namespaced key/value cache. Entries never expire on their own; EvictAll is the
// only way to drop them.
type Store interface {
	Get(ctx context.Context, namespace, key string, dst any) (bool, error)
	Set(ctx context.Context, namespace, key string, value any) error
	EvictAll(ctx context.Context, namespace string) error
}

func namespacedKey(namespace, key string) string {
	return namespace + ":" + key
}

// MemoryStore keeps JSON-encoded entries in process memory.
type MemoryStore struct {
	items *gocache.Cache
}

// NewMemoryStore constructs a MemoryStore without expiration or janitor.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: gocache.New(gocache.NoExpiration, 0)}
}

// Get decodes the entry into dst. Returns false, nil on a miss.
func (s *MemoryStore) Get(_ context.Context, namespace, key string, dst any) (bool, error) {
	raw, ok := s.items.Get(namespacedKey(namespace, key))
	if !ok {
		return false, nil
	}

	b, ok := raw.([]byte)
	if !ok {
		return false, fmt.Errorf("unexpected cached value type %T for %s/%s", raw, namespace, key)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false, fmt.Errorf("unmarshaling cached value for %s/%s: %w", namespace, key, err)
	}
	return true, nil
}

// Set stores value. A nil value is a no-op.
func (s *MemoryStore) Set(_ context.Context, namespace, key string, value any) error {
	if value == nil {
		return nil
	}

	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshaling value for %s/%s: %w", namespace, key, err)
	}
	s.items.Set(namespacedKey(namespace, key), b, gocache.NoExpiration)
	return nil
}

// EvictAll removes every entry in namespace.
func (s *MemoryStore) EvictAll(_ context.Context, namespace string) error {
	prefix := namespacedKey(namespace, "")
	for k := range s.items.Items() {
		if strings.HasPrefix(k, prefix) {
			s.items.Delete(k)
		}
	}
	return nil
}

// Len reports the number of entries across all namespaces.
func (s *MemoryStore) Len() int {
	return s.items.ItemCount()
}

// Ping always succeeds; it lets MemoryStore back the health check.
func (s *MemoryStore) Ping(context.Context) error {
	return nil
}
