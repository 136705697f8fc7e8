package rag

import (
	"strings"

	"github.com/finsight-labs/finsight/internal/fragment"
)

// DefaultContextChars is the default character budget for one context
// block. The fragment cap alone does not bound the block when fragment
// sizes vary, so a size budget is enforced here as well.
const DefaultContextChars = 24000

// BuildContext joins candidate fragment text into a single context block,
// separated by blank lines, preserving retrieval order. The result is
// empty exactly when candidates is empty.
//
// maxChars bounds the block size (0 means DefaultContextChars). Whole
// trailing fragments are dropped once the budget would be exceeded;
// fragments are never split. The first fragment is always kept.
func BuildContext(candidates []fragment.Fragment, maxChars int) string {
	if len(candidates) == 0 {
		return ""
	}
	if maxChars <= 0 {
		maxChars = DefaultContextChars
	}

	var b strings.Builder
	for i, frag := range candidates {
		sep := 0
		if i > 0 {
			sep = 2 // blank-line separator
		}
		if i > 0 && b.Len()+sep+len(frag.Text) > maxChars {
			break
		}
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(frag.Text)
	}

	return b.String()
}
