// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the YAML application configuration used by the
// relevance command.
package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/poiesic/relevance/ai"
	"github.com/poiesic/relevance/core"
)

// EmbedderConfig configures the OpenAI-compatible embedding service.
type EmbedderConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// ScoringConfig configures the engine.
type ScoringConfig struct {
	Pipeline             string `yaml:"pipeline"`
	PoolSize             int    `yaml:"pool_size"`
	EmbeddingTimeoutSecs int    `yaml:"embedding_timeout_secs"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Embedder EmbedderConfig `yaml:"embedder"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	Server   ServerConfig   `yaml:"server"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./relevance.yaml first, then ~/.config/relevance/config.yaml.
// If neither exists, it writes defaults to ~/.config/relevance/config.yaml and
// returns them. A failed write is logged and the defaults are still returned,
// with an empty path.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "relevance.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	cfg := defaultConfig()
	userPath, err := defaultUserConfigPath()
	if err != nil {
		slog.Warn("no user config directory, using defaults", "err", err)
		return cfg, "", nil
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	if err := Save(userPath, cfg); err != nil {
		slog.Warn("could not write default config, using defaults", "path", userPath, "err", err)
		return cfg, "", nil
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// AIConfig builds the provider configuration. The key is passed in by the
// caller, which reads it from the environment variable named by APIKeyEnv.
func (c *AppConfig) AIConfig(apiKey string) *ai.Config {
	return ai.NewConfig(
		ai.WithEmbeddingHost(c.Embedder.BaseURL),
		ai.WithEmbeddingModel(c.Embedder.Model),
		ai.WithAPIKey(apiKey),
		ai.WithTimeout(time.Duration(c.Embedder.TimeoutSecs)*time.Second),
	)
}

// DefaultPipeline parses Scoring.Pipeline.
func (c *AppConfig) DefaultPipeline() (core.Pipeline, error) {
	return core.ParsePipeline(c.Scoring.Pipeline)
}

// EmbeddingTimeout returns the per-calculation embedding timeout.
func (c *AppConfig) EmbeddingTimeout() time.Duration {
	return time.Duration(c.Scoring.EmbeddingTimeoutSecs) * time.Second
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "relevance", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Embedder.BaseURL == "" {
		cfg.Embedder.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Embedder.APIKeyEnv == "" {
		cfg.Embedder.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.Embedder.Model == "" {
		cfg.Embedder.Model = "text-embedding-3-small"
	}
	if cfg.Embedder.TimeoutSecs == 0 {
		cfg.Embedder.TimeoutSecs = 30
	}
	if cfg.Scoring.Pipeline == "" {
		cfg.Scoring.Pipeline = string(core.PipelineLexical)
	}
	if cfg.Scoring.EmbeddingTimeoutSecs == 0 {
		cfg.Scoring.EmbeddingTimeoutSecs = 30
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
}
