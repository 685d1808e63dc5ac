package ingest

import "strings"

// DefaultMaxChunkChars bounds a text chunk. Small enough that several chunks
// fit in a prompt, large enough to keep a few sentences of context together.
const DefaultMaxChunkChars = 500

// ChunkText splits free text into retrieval-sized chunks. Paragraphs are the
// primary unit; paragraphs longer than maxChars are split on sentence
// boundaries, and a single oversized sentence is hard-split as a last resort.
func ChunkText(text string, maxChars int) []string {
	if maxChars <= 0 {
		maxChars = DefaultMaxChunkChars
	}

	var chunks []string
	for _, paragraph := range splitParagraphs(text) {
		if len(paragraph) <= maxChars {
			chunks = append(chunks, paragraph)
			continue
		}

		var current strings.Builder
		for _, sentence := range splitSentences(paragraph) {
			if current.Len() > 0 && current.Len()+1+len(sentence) > maxChars {
				chunks = append(chunks, current.String())
				current.Reset()
			}
			if len(sentence) > maxChars {
				chunks = append(chunks, hardSplit(sentence, maxChars)...)
				continue
			}
			if current.Len() > 0 {
				current.WriteByte(' ')
			}
			current.WriteString(sentence)
		}
		if current.Len() > 0 {
			chunks = append(chunks, current.String())
		}
	}
	return chunks
}

// splitParagraphs breaks text on blank lines, trimming whitespace and
// dropping empty paragraphs.
func splitParagraphs(text string) []string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.Split(normalized, "\n\n")
	paragraphs := make([]string, 0, len(parts))
	for _, part := range parts {
		lines := strings.Fields(strings.ReplaceAll(part, "\n", " "))
		if len(lines) == 0 {
			continue
		}
		paragraphs = append(paragraphs, strings.Join(lines, " "))
	}
	return paragraphs
}

// splitSentences breaks a paragraph on terminal punctuation followed by a
// space. Abbreviations aren't handled; for campus documents that's fine.
func splitSentences(paragraph string) []string {
	var sentences []string
	start := 0
	for i := 0; i < len(paragraph)-1; i++ {
		c := paragraph[i]
		if (c == '.' || c == '?' || c == '!') && paragraph[i+1] == ' ' {
			sentence := strings.TrimSpace(paragraph[start : i+1])
			if sentence != "" {
				sentences = append(sentences, sentence)
			}
			start = i + 1
		}
	}
	if tail := strings.TrimSpace(paragraph[start:]); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}

// hardSplit cuts a string into maxChars-sized pieces.
func hardSplit(s string, maxChars int) []string {
	var parts []string
	for len(s) > maxChars {
		parts = append(parts, s[:maxChars])
		s = s[maxChars:]
	}
	if s != "" {
		parts = append(parts, s)
	}
	return parts
}
