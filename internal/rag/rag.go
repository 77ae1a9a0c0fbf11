// Package rag ties extraction, chunking, embedding, retrieval, prompt
// assembly, and generation into the upload and chat flows.
package rag

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/embeddings"

	"cortex-backend/internal/chunker"
	"cortex-backend/internal/config"
	"cortex-backend/internal/embedding"
	"cortex-backend/internal/helper"
	"cortex-backend/internal/llmservice"
	"cortex-backend/internal/models"
	"cortex-backend/internal/parser"
	"cortex-backend/internal/prompt"
	"cortex-backend/internal/retriever"
	"cortex-backend/internal/session"
)

// Generator produces a completion for a fully assembled prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type RAG struct {
	store      *session.Store
	embedder   embeddings.Embedder
	generator  Generator
	extractors *parser.Registry
	cfg        *config.Config
}

func NewRAG(store *session.Store, embedder embeddings.Embedder, generator Generator, extractors *parser.Registry, cfg *config.Config) *RAG {
	return &RAG{
		store:      store,
		embedder:   embedder,
		generator:  generator,
		extractors: extractors,
		cfg:        cfg,
	}
}

// Upload runs the ingest pipeline: extract, chunk, embed, store. It
// returns the new session id. Extraction failures degrade to empty
// text; an embedding failure fails the whole upload, since a document
// session without vectors can never serve retrieval.
func (r *RAG) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	defer helper.Timed("upload")()

	timeout := time.Duration(r.cfg.RAG.UploadTimeoutSecs) * time.Second
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	text, err := r.extractors.Extract(ctx, filename, data)
	if err != nil {
		log.Warn().Err(err).Str("file", filename).Msg("Extraction failed, storing empty text")
		text = ""
	}

	id, err := session.NewID()
	if err != nil {
		return "", err
	}

	var rec session.Record
	if parser.IsImage(filename) {
		rec = session.Record{
			Kind:      session.KindImage,
			Filename:  filename,
			OCRText:   strings.TrimSpace(text),
			CreatedAt: time.Now(),
		}
	} else {
		size, overlap := chunker.Policy(utf8.RuneCountInString(text))
		chunks := chunker.Chunk(text, size, overlap)

		embeds, err := embedding.EmbedChunks(ctx, r.embedder, chunks)
		if err != nil {
			return "", fmt.Errorf("embedding upload: %w", err)
		}
		if len(embeds) != len(chunks) {
			return "", fmt.Errorf("embedding upload: got %d vectors for %d chunks", len(embeds), len(chunks))
		}

		rec = session.Record{
			Kind:       session.KindDocument,
			Filename:   filename,
			Chunks:     chunks,
			Embeddings: embeds,
			CreatedAt:  time.Now(),
		}
	}

	r.store.Put(id, rec)
	// sessions only leave the store on restart; watch growth
	log.Info().
		Str("session", id).
		Str("kind", string(rec.Kind)).
		Int("chunks", len(rec.Chunks)).
		Int("sessions", r.store.Len()).
		Msg("Upload stored")
	return id, nil
}

// Chat answers one message. An unknown or absent session id means plain
// chat; image sessions feed the whole OCR text as a single context
// chunk; document sessions retrieve top-K chunks for the message. Every
// failure past this point collapses to the fixed degraded reply; the
// caller never sees an error.
func (r *RAG) Chat(ctx context.Context, message, sessionID, userName string) string {
	defer helper.Timed("chat")()

	mode := prompt.ModeChat
	var contextChunks []string

	if sessionID != "" {
		rec, ok := r.store.Get(sessionID)
		if !ok {
			log.Debug().Str("session", sessionID).Msg("Unknown session, falling back to plain chat")
		} else {
			switch rec.Kind {
			case session.KindImage:
				mode = prompt.ModeImage
				contextChunks = []string{rec.OCRText}
			case session.KindDocument:
				mode = prompt.ModeDocument
				queryVec, err := r.embedder.EmbedQuery(ctx, message)
				if err != nil {
					log.Error().Err(err).Msg("Query embedding failed")
					return models.DegradedReply
				}
				topK := retriever.TopK(len(rec.Chunks))
				contextChunks = retriever.Retrieve(queryVec, rec.Embeddings, rec.Chunks, topK)
				log.Info().Int("retrieved", len(contextChunks)).Int("top_k", topK).Msg("Retrieved context")
			}
		}
	}

	p := prompt.Build(message, contextChunks, userName, r.cfg.RAG.MaxContextChars, mode)

	reply, err := r.generator.Generate(ctx, p)
	if err != nil {
		log.Error().
			Err(err).
			Str("kind", llmservice.Classify(err).String()).
			Msg("Generation failed")
		return models.DegradedReply
	}
	return reply
}
