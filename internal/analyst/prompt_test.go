package analyst

import (
	"strings"
	"testing"

	"github.com/finsight-labs/finsight/internal/rag"
)

func TestAssembleAnswerPrompt(t *testing.T) {
	terms := rag.TermSet{rag.NewTerm("risk"), rag.NewTerm("litigation")}
	prompt := AssembleAnswerPrompt("Fragment one.\n\nFragment two.", "What are the risks and litigations?", terms)

	checks := []string{
		"senior financial analyst",
		"ONLY on the context",
		RefusalSentinel,
		"Fragment one.\n\nFragment two.",
		"What are the risks and litigations?",
		"risk, litigation",
	}
	for _, want := range checks {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestAssembleAnswerPrompt_KeepsOriginalQuestion(t *testing.T) {
	// The user's phrasing must survive verbatim; terms supplement it
	// instead of replacing it.
	question := "How has the company's exposure to currency fluctuations changed?"
	prompt := AssembleAnswerPrompt("ctx", question, rag.TermSet{rag.NewTerm("currency")})

	if !strings.Contains(prompt, question) {
		t.Error("original question was not preserved verbatim")
	}
}

func TestAssembleAnswerPrompt_NoTerms(t *testing.T) {
	prompt := AssembleAnswerPrompt("ctx", "question?", nil)

	if strings.Contains(prompt, "Focus keywords") {
		t.Error("prompt should omit focus keywords when no terms are given")
	}
}
