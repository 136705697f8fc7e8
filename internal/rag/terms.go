package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/finsight-labs/finsight/internal/llm"
)

var (
	// ErrExtractionFailed indicates the backend could not be reached or
	// its response yielded no usable terms after normalization.
	ErrExtractionFailed = errors.New("term extraction failed")
)

// TermExtractor converts a free-form question into search terms with a
// single LLM call. There is no offline fallback: terms come only from
// the model.
type TermExtractor struct {
	backend llm.LLM
}

// NewTermExtractor creates a TermExtractor backed by the given LLM.
func NewTermExtractor(backend llm.LLM) (*TermExtractor, error) {
	if backend == nil {
		return nil, fmt.Errorf("LLM backend cannot be nil")
	}
	return &TermExtractor{backend: backend}, nil
}

// Extract asks the model for 2-3 singular keywords and normalizes the
// response into a TermSet. Extraction is not deterministic; the contract
// is only that a successful result holds 1 to MaxTerms non-empty terms.
func (e *TermExtractor) Extract(ctx context.Context, question string) (TermSet, error) {
	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("%w: question cannot be empty", ErrExtractionFailed)
	}

	raw, err := e.backend.Complete(ctx, extractionPrompt(question))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtractionFailed, err)
	}

	terms := NormalizeTerms(raw)
	if len(terms) == 0 {
		return nil, fmt.Errorf("%w: response contained no usable terms: %q", ErrExtractionFailed, raw)
	}

	return terms, nil
}

// extractionPrompt is the fixed instruction template for the keyword
// extraction call.
func extractionPrompt(question string) string {
	var b strings.Builder

	b.WriteString("You are a search optimizer for a filing database. ")
	b.WriteString("Convert the user question into the 2-3 most important keywords for a text search.\n")
	b.WriteString("Return ONLY the keywords separated by commas, each in its singular form. ")
	b.WriteString("Do not add quotes, brackets, or any other formatting.\n\n")
	b.WriteString(fmt.Sprintf("User Question: %q\n\n", question))
	b.WriteString("Example: risk, litigation\n")

	return b.String()
}

// NormalizeTerms splits a raw model response on commas, trims whitespace
// and stray quoting, drops empty entries and duplicates, and caps the
// result at MaxTerms. The surface form is preserved for display; matching
// uses the lower-cased form.
func NormalizeTerms(raw string) TermSet {
	var terms TermSet
	seen := make(map[string]struct{})

	for _, part := range strings.Split(raw, ",") {
		surface := strings.TrimSpace(part)
		surface = strings.Trim(surface, "\"'`[]()")
		surface = strings.TrimSpace(surface)
		if surface == "" {
			continue
		}

		term := NewTerm(surface)
		if _, ok := seen[term.Match]; ok {
			continue
		}
		seen[term.Match] = struct{}{}

		terms = append(terms, term)
		if len(terms) >= MaxTerms {
			break
		}
	}

	return terms
}
