package repositories

import (
	"context"
	"sort"
	"sync"
)

// memoryKVRepository keeps device state in process memory. Used when no
// database is configured and in tests.
type memoryKVRepository struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

func NewMemoryKVRepository() KVRepository {
	return &memoryKVRepository{data: map[string]map[string]string{}}
}

func (r *memoryKVRepository) Get(_ context.Context, deviceID, key string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.data[deviceID][key]
	return v, ok, nil
}

func (r *memoryKVRepository) GetAll(_ context.Context, deviceID string, keys []string) (map[string]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := r.data[deviceID][k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

func (r *memoryKVRepository) PutMany(_ context.Context, deviceID string, entries map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	dev, ok := r.data[deviceID]
	if !ok {
		dev = map[string]string{}
		r.data[deviceID] = dev
	}
	for k, v := range entries {
		dev[k] = v
	}
	return nil
}

func (r *memoryKVRepository) Delete(_ context.Context, deviceID, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data[deviceID], key)
	return nil
}

func (r *memoryKVRepository) ListDevices(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.data))
	for id := range r.data {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}
