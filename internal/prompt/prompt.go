// Package prompt assembles the bounded, mode-aware prompt sent to the
// generation model. Prompts are built fresh per request and never
// persisted.
package prompt

import (
	"fmt"
	"strings"

	"cortex-backend/internal/models"
)

// Mode selects the instruction preamble.
type Mode string

const (
	ModeDocument Mode = "document"
	ModeImage    Mode = "image"
	ModeChat     Mode = "chat"
)

func preamble(mode Mode) string {
	switch mode {
	case ModeImage:
		return models.ImagePreamble
	case ModeDocument:
		return models.DocumentPreamble
	default:
		return models.ChatPreamble
	}
}

// Build assembles the final prompt from the user message, retrieved
// context, and optional user name.
//
// Context assembly is greedy and order-preserving: blank chunks are
// skipped, and accumulation stops before the first chunk that would
// push the running character count past maxContextChars. Accepted
// chunks are never truncated. If nothing is accepted the context block
// carries the no-context marker instead of being empty.
func Build(userMessage string, contextChunks []string, userName string, maxContextChars int, mode Mode) string {
	var context strings.Builder
	currentLen := 0
	for _, chunk := range contextChunks {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		if currentLen+len(chunk) > maxContextChars {
			break
		}
		context.WriteString("\n- ")
		context.WriteString(chunk)
		currentLen += len(chunk)
	}

	var contextBlock string
	if context.Len() > 0 {
		contextBlock = fmt.Sprintf("\nCONTEXT:%s\n", context.String())
	} else {
		contextBlock = fmt.Sprintf("\nCONTEXT:\n%s\n", models.NoContextMarker)
	}

	nameBlock := ""
	if userName != "" {
		nameBlock = fmt.Sprintf("The user's name is %s.\n", userName)
	}

	out := fmt.Sprintf("%s\n\n%s\n%s\n\nUser: %s\nCortex:",
		preamble(mode), nameBlock, contextBlock, userMessage)
	return strings.TrimSpace(out)
}
