// Package ingest turns raw filing text into redacted, chunked fragments
// in the fragment store. It is the producing side of the store contract
// the retrieval pipeline reads from.
package ingest

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/finsight-labs/finsight/internal/fragment"
)

// Ingestor chunks and redacts filing text and writes the resulting
// fragments to a fragment store.
type Ingestor struct {
	store     fragment.Store
	chunkSize int
	log       *charmlog.Logger
}

// NewIngestor creates an Ingestor writing to the given store.
// chunkSize 0 means DefaultChunkSize.
func NewIngestor(store fragment.Store, chunkSize int) (*Ingestor, error) {
	if store == nil {
		return nil, fmt.Errorf("fragment store cannot be nil")
	}
	if chunkSize < 0 {
		return nil, fmt.Errorf("chunk size must not be negative, got %d", chunkSize)
	}
	if chunkSize == 0 {
		chunkSize = DefaultChunkSize
	}

	return &Ingestor{
		store:     store,
		chunkSize: chunkSize,
		log:       charmlog.Default().With("component", "ingest"),
	}, nil
}

// IngestText chunks, redacts, and stores text for entityID. Returns the
// stored fragments.
func (ing *Ingestor) IngestText(ctx context.Context, entityID, text string) ([]fragment.Fragment, error) {
	if entityID == "" {
		return nil, fmt.Errorf("entity ID cannot be empty")
	}

	chunks := Chunk(text, ing.chunkSize)
	if len(chunks) == 0 {
		return nil, nil
	}

	fragments := make([]fragment.Fragment, len(chunks))
	redactedCount := 0
	for i, chunk := range chunks {
		redacted, markers := Redact(chunk)
		if len(markers) > 0 {
			redactedCount++
		}
		fragments[i] = fragment.Fragment{
			ID:               uuid.NewString(),
			EntityID:         entityID,
			Text:             redacted,
			RedactionMarkers: markers,
		}
	}

	if err := ing.store.Put(ctx, fragments); err != nil {
		return nil, fmt.Errorf("storing fragments: %w", err)
	}

	ing.log.Info("ingested text", "entity", entityID, "fragments", len(fragments), "redacted", redactedCount)
	return fragments, nil
}

// IngestFile reads a filing from disk and ingests it for entityID.
func (ing *Ingestor) IngestFile(ctx context.Context, entityID, path string) ([]fragment.Fragment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading filing %s: %w", path, err)
	}

	return ing.IngestText(ctx, entityID, string(data))
}
