package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"cortex-backend/internal/config"
	"cortex-backend/internal/embedding"
	"cortex-backend/internal/llmservice"
	"cortex-backend/internal/ocr"
	"cortex-backend/internal/parser"
	"cortex-backend/internal/rag"
	"cortex-backend/internal/server"
	"cortex-backend/internal/session"
)

const configFilePath = "./configs/config.yaml"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Caller().Logger()

	_ = godotenv.Load()

	configPath := flag.String("config", configFilePath, "Path to the config file")
	addr := flag.String("addr", "", "Listen address, overrides config")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if url := os.Getenv("OLLAMA_URL"); url != "" {
		cfg.EmbedLLM.BaseURL = url
		cfg.GenLLM.BaseURL = url
		cfg.OCRLLM.BaseURL = url
	}

	log.Debug().Interface("config", cfg).Msg("Loaded config")

	embedder, err := embedding.NewOllamaEmbedder(&cfg.EmbedLLM)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing embedder")
	}

	generator, err := llmservice.NewClient(&cfg.GenLLM)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing generation client")
	}

	visionClient, err := llmservice.NewClient(&cfg.OCRLLM)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing OCR client")
	}

	extractors := parser.NewRegistry(ocr.NewExtractor(visionClient))
	store := session.NewStore()
	pipeline := rag.NewRAG(store, embedder, generator, extractors, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.NewServer(pipeline, cfg).Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
