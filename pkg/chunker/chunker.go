// Package chunker splits transcripts into overlapping word windows so that
// analysis prompts for long lessons stay under the model's input budget.
package chunker

import (
	"log"
	"strings"
)

// WordCount counts whitespace-delimited tokens.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// ChunkByWords splits content into windows of chunkSize words, each
// overlapping the previous by overlap words so turns spanning a boundary
// appear in both windows. Content at or under chunkSize comes back as a
// single chunk. A non-positive chunkSize or an overlap >= chunkSize falls
// back to a single chunk.
func ChunkByWords(content string, chunkSize, overlap int) []string {
	content = strings.Join(strings.Fields(content), " ")
	words := strings.Fields(content)

	if chunkSize <= 0 || overlap >= chunkSize || len(words) <= chunkSize {
		if content == "" {
			return nil
		}
		return []string{content}
	}
	if overlap < 0 {
		overlap = 0
	}

	var chunks []string
	step := chunkSize - overlap
	for i := 0; i < len(words); i += step {
		end := i + chunkSize
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[i:end], " "))
		if end == len(words) {
			break
		}
	}

	log.Printf("Chunked %d words into %d parts (size %d, overlap %d)",
		len(words), len(chunks), chunkSize, overlap)
	return chunks
}
