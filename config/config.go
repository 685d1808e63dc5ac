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


// Package config loads environment configuration for the campusbot binary.
// A .env file in the working directory is honored when present.
package config

import (
	"errors"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ErrMissingAPIKey indicates the chat service API key is absent.
var ErrMissingAPIKey = errors.New("GROQ_API_KEY is required: set it in the environment or a .env file")

// Config holds environment-driven settings.
type Config struct {
	GroqAPIKey     string `envconfig:"GROQ_API_KEY"`
	EmbeddingHost  string `envconfig:"EMBEDDING_HOST" default:"http://localhost:11434/v1"`
	EmbeddingModel string `envconfig:"EMBEDDING_MODEL" default:"embeddinggemma"`
	ChatHost       string `envconfig:"CHAT_HOST" default:"https://api.groq.com/openai/v1"`
	ChatModel      string `envconfig:"CHAT_MODEL" default:"llama-3.3-70b-versatile"`
}

// Load reads the environment, after loading .env if one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

// RequireAPIKey errors when no chat API key is configured. The assistant
// cannot answer anything without it, so callers fail fast at startup.
func (c *Config) RequireAPIKey() error {
	if c.GroqAPIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}
