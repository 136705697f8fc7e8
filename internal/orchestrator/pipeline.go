// Package orchestrator wires term extraction, retrieval, context
// assembly, and grounded generation into one request/response cycle and
// defines the failure contract exposed to callers.
package orchestrator

import (
	"context"
	"fmt"

	charmlog "github.com/charmbracelet/log"

	"github.com/finsight-labs/finsight/internal/analyst"
	"github.com/finsight-labs/finsight/internal/fragment"
	"github.com/finsight-labs/finsight/internal/llm"
	"github.com/finsight-labs/finsight/internal/rag"
)

// Config holds configuration for the question pipeline.
type Config struct {
	// FragmentLimit caps how many fragments are retrieved per question
	FragmentLimit int

	// MaxContextChars bounds the assembled context block size
	MaxContextChars int

	// StorePath is the SQLite fragment database path
	StorePath string

	// LLM holds the language-model backend configuration
	LLM llm.Config
}

// DefaultConfig returns sensible defaults for the question pipeline.
func DefaultConfig() Config {
	return Config{
		FragmentLimit:   rag.FragmentLimit,
		MaxContextChars: rag.DefaultContextChars,
		StorePath:       "data/fragments.db",
		LLM:             llm.DefaultConfig(),
	}
}

// Response is the caller-facing result of one question.
type Response struct {
	// Answer is the generated answer text, or the refusal sentinel.
	Answer string `json:"answer"`

	// Grounded is false when the answer is a refusal.
	Grounded bool `json:"grounded"`

	// Evidence holds the text of the retrieved fragments, in retrieval
	// order, for optional display.
	Evidence []string `json:"evidence"`

	// Terms holds the extracted search terms, for optional display.
	Terms []string `json:"terms"`
}

// Pipeline orchestrates end-to-end grounded question answering. It holds
// no per-request state; concurrent Ask calls are independent.
type Pipeline struct {
	config    Config
	store     fragment.Store
	extractor *rag.TermExtractor
	retriever *rag.Retriever
	generator *analyst.Generator
	log       *charmlog.Logger
}

// NewPipeline creates a pipeline with concrete production dependencies:
// the SQLite fragment store and the OpenAI backend.
func NewPipeline(config Config) (*Pipeline, error) {
	store, err := fragment.NewSQLiteStore(config.StorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open fragment store: %w", err)
	}

	backend, err := llm.NewOpenAILLM(config.LLM)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to create LLM backend: %w", err)
	}

	pipeline, err := New(config, store, backend)
	if err != nil {
		store.Close()
		return nil, err
	}
	return pipeline, nil
}

// New creates a pipeline with injected store and backend. Tests use this
// with a memory store and a mock LLM.
func New(config Config, store fragment.Store, backend llm.LLM) (*Pipeline, error) {
	if store == nil {
		return nil, fmt.Errorf("fragment store cannot be nil")
	}
	if backend == nil {
		return nil, fmt.Errorf("LLM backend cannot be nil")
	}

	extractor, err := rag.NewTermExtractor(backend)
	if err != nil {
		return nil, fmt.Errorf("failed to create term extractor: %w", err)
	}

	retriever, err := rag.NewRetriever(store, config.FragmentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to create retriever: %w", err)
	}

	return &Pipeline{
		config:    config,
		store:     store,
		extractor: extractor,
		retriever: retriever,
		generator: analyst.NewGenerator(backend, config.LLM),
		log:       charmlog.Default().With("component", "pipeline"),
	}, nil
}

// Close releases the fragment store handle.
func (p *Pipeline) Close() error {
	return p.store.Close()
}

// Store exposes the underlying fragment store for read-side helpers
// (entity listing, stats).
func (p *Pipeline) Store() fragment.Store {
	return p.store
}

// Ask answers a question about one entity's filings, strictly from
// stored fragments. Stages run sequentially: extract terms, retrieve
// candidates, assemble context, generate the grounded answer.
//
// Failure kinds are distinguishable with errors.Is:
// rag.ErrExtractionFailed, fragment.ErrStoreUnavailable, and
// analyst.ErrGenerationFailed. A refusal (Grounded=false) is a normal
// response, not an error. No partial Response is returned on error.
func (p *Pipeline) Ask(ctx context.Context, entityID, question string) (*Response, error) {
	if entityID == "" {
		return nil, fmt.Errorf("entity ID cannot be empty")
	}

	log := p.log.With("entity", entityID)
	log.Debug("question received", "question", question)

	terms, err := p.extractor.Extract(ctx, question)
	if err != nil {
		// Never retrieve with a degraded term set.
		return nil, err
	}
	log.Debug("terms extracted", "terms", terms.Surfaces())

	candidates, err := p.retriever.Retrieve(ctx, entityID, terms)
	if err != nil {
		return nil, err
	}
	log.Debug("fragments retrieved", "count", len(candidates))

	contextBlock := rag.BuildContext(candidates, p.config.MaxContextChars)
	log.Debug("context assembled", "chars", len(contextBlock))

	answer, err := p.generator.Answer(ctx, contextBlock, question, terms)
	if err != nil {
		return nil, err
	}
	log.Debug("answer generated", "grounded", answer.Grounded)

	evidence := make([]string, len(candidates))
	for i, frag := range candidates {
		evidence[i] = frag.Text
	}

	return &Response{
		Answer:   answer.Text,
		Grounded: answer.Grounded,
		Evidence: evidence,
		Terms:    terms.Surfaces(),
	}, nil
}
