package analyst

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/finsight-labs/finsight/internal/llm"
	"github.com/finsight-labs/finsight/internal/rag"
)

func TestGenerator_Answer_Grounded(t *testing.T) {
	mock := llm.NewMockLLM("Litigation exposure is concentrated in two pending matters.")
	config := llm.DefaultConfig()
	config.Model = "test-model"

	gen := NewGenerator(mock, config)

	terms := rag.TermSet{rag.NewTerm("risk"), rag.NewTerm("litigation")}
	answer, err := gen.Answer(context.Background(), "Some filing context.", "What are the risks?", terms)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !answer.Grounded {
		t.Error("expected grounded answer")
	}
	if answer.Text != "Litigation exposure is concentrated in two pending matters." {
		t.Errorf("unexpected answer text: %s", answer.Text)
	}
	if answer.Model != "test-model" {
		t.Errorf("expected model test-model, got %s", answer.Model)
	}
	if answer.GeneratedAt.IsZero() {
		t.Error("generated timestamp is zero")
	}

	prompt := mock.LastPrompt()
	if !strings.Contains(prompt, "Some filing context.") {
		t.Error("prompt does not contain the context block")
	}
	if !strings.Contains(prompt, "What are the risks?") {
		t.Error("prompt does not contain the original question")
	}
}

func TestGenerator_Answer_EmptyContextRefusesWithoutBackendCall(t *testing.T) {
	mock := llm.NewMockLLM("should never be returned")
	gen := NewGenerator(mock, llm.DefaultConfig())

	// Repeated calls with identical empty context classify identically.
	for i := 0; i < 3; i++ {
		answer, err := gen.Answer(context.Background(), "", "What are the risks?", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if answer.Grounded {
			t.Error("expected refusal for empty context")
		}
		if answer.Text != RefusalSentinel {
			t.Errorf("expected refusal sentinel verbatim, got %q", answer.Text)
		}
	}

	if mock.Calls() != 0 {
		t.Errorf("expected no backend calls for empty context, got %d", mock.Calls())
	}
}

func TestGenerator_Answer_ClassifiesRefusal(t *testing.T) {
	tests := []struct {
		name     string
		response string
		grounded bool
	}{
		{
			name:     "exact sentinel",
			response: RefusalSentinel,
			grounded: false,
		},
		{
			name:     "sentinel with surrounding whitespace",
			response: "  " + RefusalSentinel + "\n",
			grounded: false,
		},
		{
			name:     "sentinel in quotes",
			response: `"` + RefusalSentinel + `"`,
			grounded: false,
		},
		{
			name:     "sentinel without trailing period",
			response: strings.TrimSuffix(RefusalSentinel, "."),
			grounded: false,
		},
		{
			name:     "sentinel with different casing",
			response: strings.ToUpper(RefusalSentinel),
			grounded: false,
		},
		{
			name:     "real answer",
			response: "The filings describe three litigation matters.",
			grounded: true,
		},
		{
			name:     "answer that merely mentions missing info",
			response: "The reports mention risk factors but I cannot quantify them.",
			grounded: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := NewGenerator(llm.NewMockLLM(tt.response), llm.DefaultConfig())

			answer, err := gen.Answer(context.Background(), "context", "question?", nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if answer.Grounded != tt.grounded {
				t.Errorf("expected grounded=%v for %q, got %v", tt.grounded, tt.response, answer.Grounded)
			}
		})
	}
}

func TestGenerator_Answer_BackendError(t *testing.T) {
	backendErr := errors.New("API rate limit exceeded")
	gen := NewGenerator(llm.NewMockLLMWithError(backendErr), llm.DefaultConfig())

	_, err := gen.Answer(context.Background(), "context", "question?", nil)
	if err == nil {
		t.Fatal("expected error from backend")
	}
	if !errors.Is(err, ErrGenerationFailed) {
		t.Errorf("expected ErrGenerationFailed, got %v", err)
	}
}

func TestGenerator_Answer_EmptyQuestion(t *testing.T) {
	gen := NewGenerator(llm.NewMockLLM("x"), llm.DefaultConfig())

	_, err := gen.Answer(context.Background(), "context", "  ", nil)
	if !errors.Is(err, ErrGenerationFailed) {
		t.Errorf("expected ErrGenerationFailed, got %v", err)
	}
}

func TestIsRefusal(t *testing.T) {
	if !IsRefusal(RefusalSentinel) {
		t.Error("sentinel must classify as refusal")
	}
	if IsRefusal("A perfectly grounded answer.") {
		t.Error("normal answer must not classify as refusal")
	}
}
