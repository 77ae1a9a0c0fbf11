package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.Contains(t, cfg.Server.AllowedOrigins, "http://localhost:5173")
	assert.Equal(t, "http://localhost:11434", cfg.GenLLM.BaseURL)
	assert.Equal(t, 6000, cfg.RAG.MaxContextChars)
	assert.Equal(t, 120, cfg.RAG.UploadTimeoutSecs)
	assert.NotZero(t, cfg.RAG.MaxUploadBytes)
}

func TestLoadConfigOverridesAndBackfills(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
server:
  addr: ":9090"
gen_llm:
  model: mistral
rag:
  max_context_chars: 2000
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "mistral", cfg.GenLLM.Model)
	assert.Equal(t, 2000, cfg.RAG.MaxContextChars)
	// unset fields fall back to defaults
	assert.Equal(t, "http://localhost:11434", cfg.GenLLM.BaseURL)
	assert.Equal(t, "nomic-embed-text", cfg.EmbedLLM.Model)
}

func TestLoadConfigRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
