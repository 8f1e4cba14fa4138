package service

import "strings"

const DefaultChunkMaxChars = 900

// ChunkText splits text into consecutive non-overlapping windows of at
// most maxChars runes, in source order. The input is trimmed first, each
// window is trimmed, and windows that trim down to nothing are dropped,
// so the returned slice index is the chunk ordinal. Splitting is purely
// positional; sentence and word boundaries are not respected.
func ChunkText(text string, maxChars int) []string {
	if maxChars <= 0 {
		maxChars = DefaultChunkMaxChars
	}
	runes := []rune(strings.TrimSpace(text))
	chunks := make([]string, 0, (len(runes)+maxChars-1)/maxChars)
	for i := 0; i < len(runes); i += maxChars {
		end := i + maxChars
		if end > len(runes) {
			end = len(runes)
		}
		part := strings.TrimSpace(string(runes[i:end]))
		if part != "" {
			chunks = append(chunks, part)
		}
	}
	return chunks
}
