package fragment

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// MemoryStore is an in-memory Store implementation. It backs tests and
// demos that should not depend on a SQLite database on disk.
type MemoryStore struct {
	mu        sync.RWMutex
	fragments []Fragment

	// FailWith, if set, is returned by every store operation. Used by
	// tests to simulate an unreachable store.
	FailWith error
}

// NewMemoryStore creates an empty in-memory fragment store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Lookup scans stored fragments in insertion order, matching any term as
// a case-insensitive substring, capped at limit.
func (m *MemoryStore) Lookup(ctx context.Context, entityID string, terms []string, limit int) ([]Fragment, error) {
	if m.FailWith != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, m.FailWith)
	}
	if entityID == "" {
		return nil, fmt.Errorf("entity ID cannot be empty")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}
	if len(terms) == 0 {
		return nil, nil
	}

	lowered := make([]string, len(terms))
	for i, t := range terms {
		lowered[i] = strings.ToLower(t)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var matches []Fragment
	for _, frag := range m.fragments {
		if frag.EntityID != entityID {
			continue
		}
		text := strings.ToLower(frag.Text)
		for _, term := range lowered {
			if strings.Contains(text, term) {
				matches = append(matches, frag)
				break
			}
		}
		if len(matches) >= limit {
			break
		}
	}

	return matches, nil
}

// Put appends fragments, replacing any existing fragment with the same ID.
func (m *MemoryStore) Put(ctx context.Context, fragments []Fragment) error {
	if m.FailWith != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, m.FailWith)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, frag := range fragments {
		if frag.ID == "" || frag.EntityID == "" {
			return fmt.Errorf("fragment requires id and entity_id")
		}
		replaced := false
		for i, existing := range m.fragments {
			if existing.ID == frag.ID {
				m.fragments[i] = frag
				replaced = true
				break
			}
		}
		if !replaced {
			m.fragments = append(m.fragments, frag)
		}
	}

	return nil
}

// Stats counts fragments for entityID.
func (m *MemoryStore) Stats(ctx context.Context, entityID string) (Stats, error) {
	if m.FailWith != nil {
		return Stats{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, m.FailWith)
	}
	if entityID == "" {
		return Stats{}, fmt.Errorf("entity ID cannot be empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := Stats{EntityID: entityID}
	for _, frag := range m.fragments {
		if frag.EntityID != entityID {
			continue
		}
		stats.Total++
		if len(frag.RedactionMarkers) > 0 {
			stats.Redacted++
		}
	}

	if stats.Total == 0 {
		return Stats{}, fmt.Errorf("%w: %s", ErrNoSuchEntity, entityID)
	}

	return stats, nil
}

// Entities lists the distinct entity IDs present in the store.
func (m *MemoryStore) Entities(ctx context.Context) ([]string, error) {
	if m.FailWith != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, m.FailWith)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]struct{})
	var entities []string
	for _, frag := range m.fragments {
		if _, ok := seen[frag.EntityID]; ok {
			continue
		}
		seen[frag.EntityID] = struct{}{}
		entities = append(entities, frag.EntityID)
	}

	sort.Strings(entities)
	return entities, nil
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error {
	return nil
}
