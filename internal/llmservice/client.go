// Package llmservice wraps the generation model. All calls go through
// one client; failures are classified for logging but collapse to a
// single degraded reply at the outward boundary.
package llmservice

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/schema"

	"cortex-backend/internal/config"
)

// ErrEmptyResponse marks a generation call that succeeded at the
// transport level but produced no choices.
var ErrEmptyResponse = errors.New("llm returned an empty response")

// ErrorKind is the internal taxonomy for generation failures.
type ErrorKind int

const (
	ErrNetwork ErrorKind = iota
	ErrTimeout
	ErrProtocol
	ErrMalformed
)

func (k ErrorKind) String() string {
	switch k {
	case ErrNetwork:
		return "network"
	case ErrTimeout:
		return "timeout"
	case ErrMalformed:
		return "malformed-response"
	default:
		return "protocol"
	}
}

// Classify maps a generation error onto the error taxonomy.
func Classify(err error) ErrorKind {
	if errors.Is(err, ErrEmptyResponse) {
		return ErrMalformed
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return ErrTimeout
		}
		return ErrNetwork
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return ErrNetwork
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return ErrNetwork
	}
	return ErrProtocol
}

// Client is a handle on one Ollama-hosted generation model.
type Client struct {
	llm   *ollama.LLM
	model string
}

func NewClient(llmConfig *config.LLMConfig) (*Client, error) {
	log.Debug().Interface("llmConfig", llmConfig).Msg("Initializing LLM client")
	llm, err := ollama.New(
		ollama.WithServerURL(llmConfig.BaseURL),
		ollama.WithModel(llmConfig.Model),
	)
	if err != nil {
		return nil, err
	}
	return &Client{llm: llm, model: llmConfig.Model}, nil
}

// Generate sends a single prompt and returns the trimmed completion.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeHuman, prompt),
	}
	return c.generate(ctx, messages)
}

// GenerateParts sends mixed content parts (text plus binary, used for
// OCR through a vision model).
func (c *Client) GenerateParts(ctx context.Context, parts []llms.ContentPart) (string, error) {
	messages := []llms.MessageContent{
		{Role: schema.ChatMessageTypeHuman, Parts: parts},
	}
	return c.generate(ctx, messages)
}

func (c *Client) generate(ctx context.Context, messages []llms.MessageContent) (string, error) {
	res, err := c.llm.GenerateContent(ctx, messages)
	if err != nil {
		return "", err
	}
	if len(res.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return strings.TrimSpace(res.Choices[0].Content), nil
}
