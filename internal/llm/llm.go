// Package llm abstracts the language-model backend behind a single
// Complete call. It provides a concrete OpenAI implementation and
// deterministic mocks for testing; both call sites of the pipeline (term
// extraction and answer generation) go through this interface.
package llm

import (
	"context"
	"errors"
)

var (
	ErrBackendFailed = errors.New("LLM request failed")
	ErrInvalidConfig = errors.New("invalid LLM configuration")
)

// LLM defines the interface for interacting with language models.
// Implementations must be stateless and thread-safe.
type LLM interface {
	// Complete produces text from a prompt using the configured model.
	// Returns the completion text or an error if the call fails.
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config holds common configuration options for LLM providers.
type Config struct {
	// Model specifies the model identifier (e.g., "gpt-4o")
	Model string

	// Temperature controls randomness (0.0 = deterministic, 2.0 = very random)
	Temperature float32

	// MaxTokens limits the response length (0 = use provider default)
	MaxTokens int

	// APIKey is the authentication key for the provider
	APIKey string
}

// DefaultConfig returns sensible defaults for filing analysis.
func DefaultConfig() Config {
	return Config{
		Model:       "gpt-4o",
		Temperature: 0, // model default
		MaxTokens:   2000,
	}
}
