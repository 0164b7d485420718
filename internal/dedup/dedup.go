// Package dedup tracks detail URLs that were already processed so the same
// job is not applied to twice across pages, terms, or runs.
package dedup

import (
	"context"
	"sync"
)

// Deduper is a seen-set keyed by canonical detail URL.
// AddIfNotExists returns true when the key was new.
type Deduper interface {
	AddIfNotExists(ctx context.Context, key string) bool
	Close() error
}

// Memory is the in-process Deduper used for single runs
type Memory struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewMemory creates an empty in-memory Deduper
func NewMemory() *Memory {
	return &Memory{seen: make(map[string]struct{})}
}

// AddIfNotExists marks key as seen, reporting whether it was new
func (m *Memory) AddIfNotExists(_ context.Context, key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.seen[key]; ok {
		return false
	}

	m.seen[key] = struct{}{}

	return true
}

// Len returns the number of seen keys
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.seen)
}

// Close is a no-op for the in-memory Deduper
func (m *Memory) Close() error {
	return nil
}
