package analyst

import (
	"fmt"
	"strings"

	"github.com/finsight-labs/finsight/internal/rag"
)

// AssembleAnswerPrompt builds the grounded-answer prompt from the
// retrieved context and the user's question. The original question is
// carried verbatim; the extracted terms are listed only as focus
// keywords, so the model sees the user's actual intent rather than a
// reformulation synthesized from keywords.
func AssembleAnswerPrompt(contextBlock, question string, terms rag.TermSet) string {
	var b strings.Builder

	b.WriteString("You are a senior financial analyst. ")
	b.WriteString("Answer the user's question based ONLY on the context provided below. ")
	b.WriteString(fmt.Sprintf("If the answer is not in the context, respond with exactly: %q\n\n", RefusalSentinel))

	b.WriteString("# Context\n\n")
	b.WriteString(contextBlock)
	b.WriteString("\n\n")

	b.WriteString("# User Question\n\n")
	b.WriteString(question)
	b.WriteString("\n")

	if len(terms) > 0 {
		b.WriteString(fmt.Sprintf("\nFocus keywords: %s\n", strings.Join(terms.Surfaces(), ", ")))
	}

	b.WriteString("\n# Task\n\n")
	b.WriteString("Base every statement strictly on the context above. ")
	b.WriteString("Do not use outside knowledge and do not speculate. ")
	b.WriteString("Answer clearly and concisely in 1-3 paragraphs.\n")

	return b.String()
}
