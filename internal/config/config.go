package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// LLMConfig points at one Ollama-hosted model.
type LLMConfig struct {
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
	Key     string `yaml:"key,omitempty"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// RAGConfig bounds the retrieval pipeline.
type RAGConfig struct {
	MaxContextChars   int   `yaml:"max_context_chars"`
	UploadTimeoutSecs int   `yaml:"upload_timeout_secs"`
	MaxUploadBytes    int64 `yaml:"max_upload_bytes"`
}

type Config struct {
	Server   ServerConfig `yaml:"server"`
	EmbedLLM LLMConfig    `yaml:"embed_llm"`
	GenLLM   LLMConfig    `yaml:"gen_llm"`
	OCRLLM   LLMConfig    `yaml:"ocr_llm"`
	RAG      RAGConfig    `yaml:"rag"`
}

// LoadConfig reads a YAML config from path. A missing file is not an
// error; defaults are returned so the server can run against a local
// Ollama out of the box.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			return cfg, nil
		}
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

func defaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8000"
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		}
	}
	if cfg.EmbedLLM.BaseURL == "" {
		cfg.EmbedLLM.BaseURL = "http://localhost:11434"
	}
	if cfg.EmbedLLM.Model == "" {
		cfg.EmbedLLM.Model = "nomic-embed-text"
	}
	if cfg.GenLLM.BaseURL == "" {
		cfg.GenLLM.BaseURL = "http://localhost:11434"
	}
	if cfg.GenLLM.Model == "" {
		cfg.GenLLM.Model = "llama3.1:8b"
	}
	if cfg.OCRLLM.BaseURL == "" {
		cfg.OCRLLM.BaseURL = "http://localhost:11434"
	}
	if cfg.OCRLLM.Model == "" {
		cfg.OCRLLM.Model = "llava"
	}
	if cfg.RAG.MaxContextChars == 0 {
		cfg.RAG.MaxContextChars = 6000
	}
	if cfg.RAG.UploadTimeoutSecs == 0 {
		cfg.RAG.UploadTimeoutSecs = 120
	}
	if cfg.RAG.MaxUploadBytes == 0 {
		cfg.RAG.MaxUploadBytes = 32 << 20 // 32 MiB
	}
}
