// Package rag implements the retrieval half of the question pipeline:
// turning a question into search terms, matching fragments in the store,
// and assembling the retrieved text into a single context block.
package rag

import "strings"

// MaxTerms caps how many search terms are kept from one extraction.
const MaxTerms = 3

// FragmentLimit caps how many fragments one retrieval returns.
const FragmentLimit = 10

// Term is a single search keyword derived from a user question.
type Term struct {
	// Surface is the term as the model produced it, kept for display.
	Surface string `json:"surface"`

	// Match is the lower-cased form used for substring matching.
	Match string `json:"match"`
}

// TermSet is an ordered set of search terms. A successful extraction
// always yields between 1 and MaxTerms terms.
type TermSet []Term

// NewTerm builds a Term from a surface form.
func NewTerm(surface string) Term {
	return Term{Surface: surface, Match: strings.ToLower(surface)}
}

// Surfaces returns the display forms of all terms, in order.
func (ts TermSet) Surfaces() []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Surface
	}
	return out
}

// Matches returns the lower-cased match forms of all terms, in order.
func (ts TermSet) Matches() []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Match
	}
	return out
}
