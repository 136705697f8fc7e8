package llm

import (
	"context"
	"errors"
	"testing"
)

func TestMockLLM_Complete(t *testing.T) {
	tests := []struct {
		name     string
		mock     *MockLLM
		prompt   string
		wantErr  bool
		wantText string
	}{
		{
			name:     "fixed response",
			mock:     NewMockLLM("Fixed answer text"),
			prompt:   "Any prompt",
			wantErr:  false,
			wantText: "Fixed answer text",
		},
		{
			name:    "error response",
			mock:    NewMockLLMWithError(errors.New("mock error")),
			prompt:  "Any prompt",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			text, err := tt.mock.Complete(ctx, tt.prompt)

			if tt.wantErr {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}

			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if text != tt.wantText {
				t.Errorf("expected %q, got %q", tt.wantText, text)
			}
			if tt.mock.LastPrompt() != tt.prompt {
				t.Errorf("expected LastPrompt %q, got %q", tt.prompt, tt.mock.LastPrompt())
			}
		})
	}
}

func TestMockLLM_ScriptedResponses(t *testing.T) {
	mock := NewScriptedLLM("first", "second")
	ctx := context.Background()

	got1, err := mock.Complete(ctx, "p1")
	if err != nil || got1 != "first" {
		t.Errorf("call 1: expected first, got %q (%v)", got1, err)
	}
	got2, err := mock.Complete(ctx, "p2")
	if err != nil || got2 != "second" {
		t.Errorf("call 2: expected second, got %q (%v)", got2, err)
	}

	// Falls back to the fixed response once exhausted.
	got3, err := mock.Complete(ctx, "p3")
	if err != nil || got3 != "" {
		t.Errorf("call 3: expected empty fallback, got %q (%v)", got3, err)
	}

	if mock.Calls() != 3 {
		t.Errorf("expected 3 calls, got %d", mock.Calls())
	}
	prompts := mock.Prompts()
	if len(prompts) != 3 || prompts[0] != "p1" || prompts[2] != "p3" {
		t.Errorf("unexpected prompts: %v", prompts)
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Model != "gpt-4o" {
		t.Errorf("expected model gpt-4o, got %s", config.Model)
	}
	if config.MaxTokens != 2000 {
		t.Errorf("expected MaxTokens=2000, got %d", config.MaxTokens)
	}
}

func TestNewOpenAILLM_MissingKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := NewOpenAILLM(Config{Model: "gpt-4o"})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestNewOpenAILLM_MissingModel(t *testing.T) {
	_, err := NewOpenAILLM(Config{APIKey: "sk-test"})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}
