package storage

import (
	"context"
	"errors"
	"fmt"
	"os"

	"storefront.GO/core/cache"
)

// Memory keeps values in a process-local cache. It optionally survives
// restarts through a JSON snapshot file.
type Memory struct {
	cache *cache.Cache
}

func NewMemory() *Memory {
	return &Memory{cache: cache.NewCache()}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.cache.Get(key)
	if !ok {
		return "", false, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", false, fmt.Errorf("memory: value of %s is %T, not string", key, v)
	}
	return s, true, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.cache.Set(key, value, 0)
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.cache.Delete(key)
	return nil
}

// Snapshot writes every key to path.
func (m *Memory) Snapshot(path string) error {
	return m.cache.DumpToFile(path)
}

// Restore loads a snapshot written by Snapshot. A missing file is not an error.
func (m *Memory) Restore(path string) error {
	err := m.cache.RestoreFromFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
