// Package chunker splits extracted text into overlapping word windows,
// the unit of retrieval for document sessions.
package chunker

import "strings"

// Chunk splits text into windows of size words, each window starting
// size-overlap words after the previous one. Words are whitespace
// tokens; windows are rejoined with single spaces. Empty or
// whitespace-only input yields nil.
//
// The step is clamped to at least 1 so overlap >= size cannot stall the
// walk.
func Chunk(text string, size, overlap int) []string {
	words := strings.Fields(text)
	if len(words) == 0 || size <= 0 {
		return nil
	}

	step := size - overlap
	if step < 1 {
		step = 1
	}

	var chunks []string
	for start := 0; start < len(words); start += step {
		end := start + size
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
	}
	return chunks
}

// Policy picks chunk size and overlap from the total extracted
// character count. Short texts get fine-grained chunks; long texts get
// coarser ones so the chunk count stays manageable.
func Policy(totalChars int) (size, overlap int) {
	switch {
	case totalChars < 3000:
		return 500, 50
	case totalChars < 15000:
		return 800, 100
	default:
		return 1200, 150
	}
}
