package repository

import (
	"context"
	"sort"
	"sync"
)

type memoryEntry struct {
	key   StoreKey
	value []byte
}

type memoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewMemoryStore 进程内 KVStore，用于 db.driver=memory 与测试
func NewMemoryStore() KVStore {
	return &memoryStore{entries: make(map[string]memoryEntry)}
}

// InProcess 数据随进程结束而丢失
func (s *memoryStore) InProcess() bool { return true }

func (s *memoryStore) Get(_ context.Context, key StoreKey) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key.String()]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, true, nil
}

func (s *memoryStore) Set(_ context.Context, key StoreKey, value []byte) error {
	buf := make([]byte, len(value))
	copy(buf, value)

	s.mu.Lock()
	s.entries[key.String()] = memoryEntry{key: key, value: buf}
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) Delete(_ context.Context, key StoreKey) error {
	s.mu.Lock()
	delete(s.entries, key.String())
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) ListKeys(_ context.Context, kind Kind, shop string) ([]StoreKey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []StoreKey
	for _, e := range s.entries {
		if e.key.Kind == kind && e.key.Shop == shop {
			keys = append(keys, e.key)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Week < keys[j].Week })
	return keys, nil
}

func (s *memoryStore) Count(_ context.Context, kind Kind, shop string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, e := range s.entries {
		if e.key.Kind == kind && e.key.Shop == shop {
			n++
		}
	}
	return n, nil
}
