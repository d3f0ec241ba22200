package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/relevance/core"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "https://api.openai.com/v1", cfg.Embedder.BaseURL)
	assert.Equal(t, "OPENAI_API_KEY", cfg.Embedder.APIKeyEnv)
	assert.Equal(t, "text-embedding-3-small", cfg.Embedder.Model)
	assert.Equal(t, 30, cfg.Embedder.TimeoutSecs)
	assert.Equal(t, "lexical", cfg.Scoring.Pipeline)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoad_PartialFileGetsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relevance.yaml")
	require.NoError(t, os.WriteFile(path, []byte("embedder:\n  model: embeddinggemma\nscoring:\n  pipeline: llm\n  pool_size: 4\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "embeddinggemma", cfg.Embedder.Model)
	assert.Equal(t, "https://api.openai.com/v1", cfg.Embedder.BaseURL)
	assert.Equal(t, 4, cfg.Scoring.PoolSize)

	p, err := cfg.DefaultPipeline()
	require.NoError(t, err)
	assert.Equal(t, core.PipelineSemantic, p)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("embedder: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := defaultConfig()
	cfg.Server.Addr = "127.0.0.1:9000"

	require.NoError(t, Save(path, cfg))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestAIConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.Embedder.BaseURL = "http://localhost:11434"

	ac := cfg.AIConfig("secret")
	require.NoError(t, ac.Validate())
	assert.Equal(t, "http://localhost:11434/v1", ac.EmbeddingHost)
	assert.Equal(t, "secret", ac.APIKey)
	assert.Equal(t, 30*time.Second, ac.Timeout)
	assert.Equal(t, 30*time.Second, cfg.EmbeddingTimeout())
}

func TestLoadDefault_PrefersWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile("relevance.yaml", []byte("server:\n  addr: \":7000\"\n"), 0o644))

	cfg, path, err := LoadDefault()
	require.NoError(t, err)
	assert.Equal(t, "relevance.yaml", path)
	assert.Equal(t, ":7000", cfg.Server.Addr)
}

func TestLoadDefault_WritesUserConfig(t *testing.T) {
	t.Chdir(t.TempDir())
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, path, err := LoadDefault()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "relevance", "config.yaml"), path)
	assert.FileExists(t, path)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoadDefault_UnwritableHomeReturnsDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	home := t.TempDir()
	t.Setenv("HOME", home)
	// A regular file where the config directory should go makes MkdirAll fail,
	// even for root.
	require.NoError(t, os.WriteFile(filepath.Join(home, ".config"), []byte("x"), 0o644))

	cfg, path, err := LoadDefault()
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, string(core.PipelineLexical), cfg.Scoring.Pipeline)
	assert.Equal(t, "OPENAI_API_KEY", cfg.Embedder.APIKeyEnv)
}
