package rag

import (
	"context"
	"fmt"

	"github.com/finsight-labs/finsight/internal/fragment"
)

// Retriever matches extracted terms against the fragment store for one
// entity. A fragment matches when ANY term occurs as a case-insensitive
// substring of its text; results keep the store's native order and are
// never re-ranked.
type Retriever struct {
	store fragment.Store
	limit int
}

// NewRetriever creates a Retriever over the given fragment store.
// limit caps the candidate count; 0 means FragmentLimit.
func NewRetriever(store fragment.Store, limit int) (*Retriever, error) {
	if store == nil {
		return nil, fmt.Errorf("fragment store cannot be nil")
	}
	if limit < 0 {
		return nil, fmt.Errorf("limit must not be negative, got %d", limit)
	}
	if limit == 0 {
		limit = FragmentLimit
	}

	return &Retriever{store: store, limit: limit}, nil
}

// Retrieve returns fragments for entityID matching any term in terms.
// An empty result is valid: new entities may simply have no indexed data
// yet. Store failures propagate so errors.Is with
// fragment.ErrStoreUnavailable holds for the caller.
func (r *Retriever) Retrieve(ctx context.Context, entityID string, terms TermSet) ([]fragment.Fragment, error) {
	if entityID == "" {
		return nil, fmt.Errorf("entity ID cannot be empty")
	}
	if len(terms) == 0 {
		return nil, fmt.Errorf("term set cannot be empty")
	}

	fragments, err := r.store.Lookup(ctx, entityID, terms.Matches(), r.limit)
	if err != nil {
		return nil, fmt.Errorf("fragment lookup failed: %w", err)
	}

	return fragments, nil
}
