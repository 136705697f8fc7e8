// Package fragment defines the document fragment model and the store
// contract the retrieval pipeline reads from. Fragments are produced by
// the ingestion side and are immutable once stored; the pipeline only
// ever looks them up by entity and substring terms.
package fragment

import (
	"context"
	"errors"
)

var (
	// ErrStoreUnavailable indicates the backing store could not be reached
	// or errored while executing a lookup.
	ErrStoreUnavailable = errors.New("fragment store unavailable")

	// ErrNoSuchEntity indicates the entity has no fragments in the store at
	// all. Lookup treats this as an empty result, not a failure; only
	// operations that need to distinguish "no data yet" return it.
	ErrNoSuchEntity = errors.New("entity not found in fragment store")
)

// Fragment is a stored unit of filing text owned by a single entity.
type Fragment struct {
	// ID is an opaque fragment identifier assigned at ingestion.
	ID string `json:"fragment_id"`

	// EntityID is the ticker the fragment belongs to. Matching is
	// case-sensitive and exact.
	EntityID string `json:"entity_id"`

	// Text is the fragment content, post-redaction.
	Text string `json:"text"`

	// RedactionMarkers lists the PII markers present in Text, e.g.
	// "[PHONE_REDACTED]". Empty for clean fragments.
	RedactionMarkers []string `json:"redaction_markers,omitempty"`
}

// Stats summarizes the fragments stored for one entity.
type Stats struct {
	EntityID string `json:"entity_id"`
	Total    int    `json:"total"`
	Redacted int    `json:"redacted"`
}

// Store is the fragment store boundary consumed by the retriever and fed
// by the ingestion side. Implementations must be safe for concurrent
// readers; a single handle is acquired at process start and shared.
type Store interface {
	// Lookup returns fragments owned by entityID whose text contains any
	// of the given terms as a case-insensitive substring, in store-native
	// order, capped at limit. An empty term list yields no results rather
	// than all results. An unknown entity yields an empty slice, not an
	// error.
	Lookup(ctx context.Context, entityID string, terms []string, limit int) ([]Fragment, error)

	// Put stores fragments. Existing fragments with the same ID are
	// replaced.
	Put(ctx context.Context, fragments []Fragment) error

	// Stats returns fragment counts for an entity. Returns ErrNoSuchEntity
	// when the entity has no fragments.
	Stats(ctx context.Context, entityID string) (Stats, error)

	// Entities lists the distinct entity IDs present in the store, sorted.
	Entities(ctx context.Context) ([]string, error)

	// Close releases the underlying store handle.
	Close() error
}
