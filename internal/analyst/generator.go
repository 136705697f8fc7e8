// Package analyst produces grounded answers from retrieved filing
// context. The generator constrains the model to the supplied context
// and classifies the fixed refusal sentinel, so an insufficient context
// surfaces as a well-formed refusal rather than a hallucinated answer.
package analyst

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/finsight-labs/finsight/internal/llm"
	"github.com/finsight-labs/finsight/internal/rag"
)

var (
	ErrGenerationFailed = errors.New("answer generation failed")
)

// RefusalSentinel is the exact string the model is instructed to return
// when the answer is not present in the supplied context.
const RefusalSentinel = "I cannot find that information in the reports."

// Answer is the generator's output for one question.
type Answer struct {
	// Text is the generated answer, or the refusal sentinel.
	Text string `json:"text"`

	// Grounded is false exactly when the model refused for lack of
	// context. A refusal is a successful outcome, not an error.
	Grounded bool `json:"grounded"`

	// Model is the LLM model that produced this answer.
	Model string `json:"model"`

	// GeneratedAt is when this answer was created.
	GeneratedAt time.Time `json:"generated_at"`
}

// Generator produces grounded answers using an LLM.
type Generator struct {
	backend llm.LLM
	config  llm.Config
}

// NewGenerator creates an answer generator with the given LLM implementation.
func NewGenerator(backend llm.LLM, config llm.Config) *Generator {
	return &Generator{
		backend: backend,
		config:  config,
	}
}

// Answer generates a grounded answer for question from contextBlock.
// An empty context block short-circuits to the refusal sentinel without a
// backend call: the model would be instructed to refuse anyway, and the
// short circuit keeps the empty-context outcome deterministic.
func (g *Generator) Answer(ctx context.Context, contextBlock, question string, terms rag.TermSet) (*Answer, error) {
	if g.backend == nil {
		return nil, fmt.Errorf("%w: LLM is required", ErrGenerationFailed)
	}
	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("%w: question is required", ErrGenerationFailed)
	}

	if contextBlock == "" {
		return &Answer{
			Text:        RefusalSentinel,
			Grounded:    false,
			Model:       g.config.Model,
			GeneratedAt: time.Now(),
		}, nil
	}

	prompt := AssembleAnswerPrompt(contextBlock, question, terms)

	text, err := g.backend.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: LLM invocation failed: %w", ErrGenerationFailed, err)
	}

	return &Answer{
		Text:        strings.TrimSpace(text),
		Grounded:    !IsRefusal(text),
		Model:       g.config.Model,
		GeneratedAt: time.Now(),
	}, nil
}

// IsRefusal reports whether a model response is the refusal sentinel,
// tolerating surrounding whitespace, quoting, and trailing punctuation.
func IsRefusal(text string) bool {
	normalized := normalizeForRefusalMatch(text)
	return normalized == normalizeForRefusalMatch(RefusalSentinel)
}

func normalizeForRefusalMatch(text string) string {
	s := strings.TrimSpace(text)
	s = strings.Trim(s, "\"'`")
	s = strings.TrimRight(s, ".!")
	return strings.ToLower(strings.TrimSpace(s))
}
