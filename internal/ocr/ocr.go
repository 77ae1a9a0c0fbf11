// Package ocr extracts text from images by asking a vision-capable
// model for a transcription.
package ocr

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"

	"cortex-backend/internal/llmservice"
	"cortex-backend/internal/models"
)

// Extractor implements parser.Extractor over a vision model.
type Extractor struct {
	client *llmservice.Client
}

func NewExtractor(client *llmservice.Client) *Extractor {
	return &Extractor{client: client}
}

// Extract transcribes the image. OCR failures degrade to a placeholder
// string; uploads never abort on a bad image.
func (e *Extractor) Extract(ctx context.Context, filename string, data []byte) (string, error) {
	parts := []llms.ContentPart{
		llms.BinaryPart(mimeType(filename), data),
		llms.TextPart(models.OCRInstruction),
	}
	text, err := e.client.GenerateParts(ctx, parts)
	if err != nil {
		log.Warn().Err(err).Str("file", filename).Msg("OCR extraction failed")
		return fmt.Sprintf("[OCR ERROR] Failed to extract text from image: %v", err), nil
	}
	return strings.TrimSpace(text), nil
}

func mimeType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".bmp":
		return "image/bmp"
	case ".tiff":
		return "image/tiff"
	default:
		return "application/octet-stream"
	}
}
