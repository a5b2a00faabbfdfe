package cache

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// Provider is the minimal cache surface the store depends on. Values round-
// trip through JSON so the Redis and in-memory implementations behave the
// same.
type Provider interface {
	Get(key string, dest any) error
	Set(key string, value any, expiration time.Duration) error
}

type memoryItem struct {
	data      []byte
	expiresAt time.Time
}

// Memory is the fallback provider used when no Redis is configured.
type Memory struct {
	mu    sync.RWMutex
	items map[string]memoryItem
}

// NewMemory returns an empty in-memory provider.
func NewMemory() *Memory {
	return &Memory{items: map[string]memoryItem{}}
}

func (m *Memory) Get(key string, dest any) error {
	m.mu.RLock()
	item, ok := m.items[key]
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("cache miss")
	}
	if !item.expiresAt.IsZero() && time.Now().After(item.expiresAt) {
		m.mu.Lock()
		delete(m.items, key)
		m.mu.Unlock()
		return fmt.Errorf("cache expired")
	}
	return json.Unmarshal(item.data, dest)
}

func (m *Memory) Set(key string, value any, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	var expiresAt time.Time
	if expiration > 0 {
		expiresAt = time.Now().Add(expiration)
	}
	m.mu.Lock()
	m.items[key] = memoryItem{data: data, expiresAt: expiresAt}
	m.mu.Unlock()
	return nil
}
