package services

import (
	"context"
	"sync"
	"time"

	"mindzy/internal/repositories"
)

var testNow = time.Date(2025, 12, 19, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func newTestStore() (*StateStore, repositories.KVRepository) {
	repo := repositories.NewMemoryKVRepository()
	return NewStateStore(repo, fixedClock), repo
}

// countingRepo records how many PutMany calls reach the repository.
type countingRepo struct {
	repositories.KVRepository

	mu   sync.Mutex
	puts []map[string]string
}

func (r *countingRepo) PutMany(ctx context.Context, deviceID string, entries map[string]string) error {
	r.mu.Lock()
	cp := make(map[string]string, len(entries))
	for k, v := range entries {
		cp[k] = v
	}
	r.puts = append(r.puts, cp)
	r.mu.Unlock()
	return r.KVRepository.PutMany(ctx, deviceID, entries)
}
