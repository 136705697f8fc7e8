package ingest

import "strings"

// DefaultChunkSize is the target fragment size in characters.
const DefaultChunkSize = 1500

// Chunk splits filing text into fragments of roughly size characters,
// preferring paragraph boundaries and falling back to word boundaries.
// Paragraphs larger than size are split; paragraphs are never merged
// across a chunk that would exceed the target.
func Chunk(text string, size int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var chunks []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
		}
	}

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		if len(para) > size {
			flush()
			chunks = append(chunks, splitLongParagraph(para, size)...)
			continue
		}

		if current.Len() > 0 && current.Len()+2+len(para) > size {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(para)
	}
	flush()

	return chunks
}

// splitLongParagraph cuts an oversized paragraph at word boundaries.
func splitLongParagraph(para string, size int) []string {
	var chunks []string

	for len(para) > size {
		cut := strings.LastIndex(para[:size], " ")
		if cut <= 0 {
			cut = size
		}
		chunks = append(chunks, strings.TrimSpace(para[:cut]))
		para = strings.TrimSpace(para[cut:])
	}
	if para != "" {
		chunks = append(chunks, para)
	}

	return chunks
}
