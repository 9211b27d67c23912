// Copyright 2026 The docsight Authors
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

// Package config loads the application configuration from YAML with
// sensible defaults. Secrets come from the environment, never the file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/docsight/docsight/core"
	"gopkg.in/yaml.v3"
)

// AIConfig configures the OpenAI-compatible embedding and generation
// backends.
type AIConfig struct {
	EmbeddingHost  string `yaml:"embedding_host"`
	GeneratorHost  string `yaml:"generator_host"`
	EmbeddingModel string `yaml:"embedding_model"`
	GeneratorModel string `yaml:"generator_model"`
	APIKeyEnv      string `yaml:"api_key_env"`
	TimeoutSecs    int    `yaml:"timeout_secs"`
}

// ChunkingConfig configures how extracted text is split.
type ChunkingConfig struct {
	Size    int `yaml:"size"`
	Overlap int `yaml:"overlap"`
}

// SessionConfig bounds live sessions. Zero capacity means unbounded,
// zero TTL disables idle expiry.
type SessionConfig struct {
	Capacity    int `yaml:"capacity"`
	IdleTTLSecs int `yaml:"idle_ttl_secs"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// QueryConfig configures retrieval and prompting.
type QueryConfig struct {
	TopK            int `yaml:"top_k"`
	MaxHistoryTurns int `yaml:"max_history_turns"`
}

// AppConfig is the root application configuration.
type AppConfig struct {
	Server   ServerConfig   `yaml:"server"`
	AI       AIConfig       `yaml:"ai"`
	Chunking ChunkingConfig `yaml:"chunking"`
	Query    QueryConfig    `yaml:"query"`
	Session  SessionConfig  `yaml:"session"`
}

// Load reads a config from path. A missing file yields defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Default returns the configuration used when no file is present.
func Default() *AppConfig {
	cfg := &AppConfig{}
	applyDefaults(cfg)
	return cfg
}

// APIKey resolves the backend API key from the configured environment
// variable. Local OpenAI-compatible servers accept any value.
func (c *AIConfig) APIKey() string {
	if key := os.Getenv(c.APIKeyEnv); key != "" {
		return key
	}
	return "none"
}

// Validate checks the configuration once at startup so later stages can
// trust it.
func (c *AppConfig) Validate() error {
	if err := core.ValidateChunking(c.Chunking.Size, c.Chunking.Overlap); err != nil {
		return err
	}
	if c.Query.TopK < 1 {
		return fmt.Errorf("query.top_k must be positive, got %d", c.Query.TopK)
	}
	if c.Query.MaxHistoryTurns < 0 {
		return fmt.Errorf("query.max_history_turns cannot be negative, got %d", c.Query.MaxHistoryTurns)
	}
	if c.Session.Capacity < 0 {
		return fmt.Errorf("session.capacity cannot be negative, got %d", c.Session.Capacity)
	}
	if c.Session.IdleTTLSecs < 0 {
		return fmt.Errorf("session.idle_ttl_secs cannot be negative, got %d", c.Session.IdleTTLSecs)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	return nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.AI.EmbeddingHost == "" {
		cfg.AI.EmbeddingHost = "http://localhost:11434/v1"
	}
	if cfg.AI.GeneratorHost == "" {
		cfg.AI.GeneratorHost = cfg.AI.EmbeddingHost
	}
	if cfg.AI.EmbeddingModel == "" {
		cfg.AI.EmbeddingModel = "embeddinggemma"
	}
	if cfg.AI.GeneratorModel == "" {
		cfg.AI.GeneratorModel = "qwen2.5:3b"
	}
	if cfg.AI.APIKeyEnv == "" {
		cfg.AI.APIKeyEnv = "DOCSIGHT_API_KEY"
	}
	if cfg.AI.TimeoutSecs == 0 {
		cfg.AI.TimeoutSecs = 60
	}
	if cfg.Chunking.Size == 0 {
		// Overlap defaults only alongside the size default; an explicit
		// size with overlap 0 is a valid no-overlap setup.
		cfg.Chunking.Size = 1000
		if cfg.Chunking.Overlap == 0 {
			cfg.Chunking.Overlap = 200
		}
	}
	if cfg.Query.TopK == 0 {
		cfg.Query.TopK = 4
	}
	if cfg.Query.MaxHistoryTurns == 0 {
		cfg.Query.MaxHistoryTurns = 20
	}
}
