// Package store keeps Jess records as JSON collections on top of a
// string key-value persistence. Every call re-reads the collection and
// writes it back before returning, so several stores sharing one
// persistence always see each other's writes.
package store

import (
	"encoding/json"
	"fmt"
	"sync"

	appLog "github.com/balkashynov/jess/internal/log"
)

// Persistence keys
const (
	KeyEvents      = "jess_events"
	KeyTimetable   = "jess_timetable"
	KeyTasks       = "jess_tasks"
	KeyAssignments = "jess_assignments"
)

// Persistence is a string key-value store. db.KV and MemoryKV satisfy it.
type Persistence interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// MemoryKV is an in-process Persistence used by tests and --ephemeral runs
type MemoryKV struct {
	mu   sync.Mutex
	data map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

func (m *MemoryKV) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryKV) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// load reads the collection under key. A missing key or unreadable JSON
// yields an empty collection; only persistence failures are errors.
func load[T any](p Persistence, key string) ([]T, error) {
	raw, ok, err := p.Get(key)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}
	if !ok || raw == "" {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		appLog.Debug("discarding malformed collection", "key", key, "error", err)
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// save writes the whole collection under key
func save[T any](p Persistence, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := p.Set(key, string(data)); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}
