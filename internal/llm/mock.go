package llm

import (
	"context"
	"sync"
)

// MockLLM is a deterministic LLM implementation for testing.
// It returns scripted responses in order, falling back to a fixed one.
type MockLLM struct {
	// Response is the fixed text returned by Complete once Responses is
	// exhausted (or when Responses is empty).
	Response string

	// Responses, if set, are returned one per call in order. The pipeline
	// makes two calls per question (extraction, then generation), so tests
	// usually script two entries.
	Responses []string

	// Error, if set, is returned by Complete instead of a response.
	Error error

	mu      sync.Mutex
	calls   int
	prompts []string
}

// NewMockLLM creates a mock LLM with the given fixed response.
func NewMockLLM(response string) *MockLLM {
	return &MockLLM{Response: response}
}

// NewScriptedLLM creates a mock LLM that returns the given responses in
// order, one per call.
func NewScriptedLLM(responses ...string) *MockLLM {
	return &MockLLM{Responses: responses}
}

// NewMockLLMWithError creates a mock LLM that always returns an error.
func NewMockLLMWithError(err error) *MockLLM {
	return &MockLLM{Error: err}
}

// Complete returns the next scripted response, or the fixed response.
func (m *MockLLM) Complete(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.prompts = append(m.prompts, prompt)
	call := m.calls
	m.calls++

	if m.Error != nil {
		return "", m.Error
	}

	if call < len(m.Responses) {
		return m.Responses[call], nil
	}

	return m.Response, nil
}

// Calls reports how many times Complete was invoked.
func (m *MockLLM) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LastPrompt returns the most recent prompt passed to Complete.
func (m *MockLLM) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}

// Prompts returns all prompts passed to Complete, in order.
func (m *MockLLM) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.prompts))
	copy(out, m.prompts)
	return out
}
