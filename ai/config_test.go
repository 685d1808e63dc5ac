package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.ChatHost)
	assert.Equal(t, "embeddinggemma", cfg.EmbeddingModel)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.ChatModel)
	assert.Empty(t, cfg.APIKey)
	assert.Equal(t, 0.7, cfg.Temperature)
	assert.Equal(t, 1024, cfg.MaxTokens)
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()

		assert.NotNil(t, cfg)
		// Should have default values
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
		assert.Equal(t, "https://api.groq.com/openai/v1", cfg.ChatHost)
	})

	t.Run("with custom hosts", func(t *testing.T) {
		cfg := NewConfig(
			WithEmbeddingHost("http://embed:8080/v1"),
			WithChatHost("http://chat:9090/v1"),
		)

		assert.Equal(t, "http://embed:8080/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://chat:9090/v1", cfg.ChatHost)
	})

	t.Run("with custom models", func(t *testing.T) {
		cfg := NewConfig(
			WithEmbeddingModel("text-embedding-3-small"),
			WithChatModel("gpt-4o-mini"),
		)

		assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
		assert.Equal(t, "gpt-4o-mini", cfg.ChatModel)
	})

	t.Run("with api key", func(t *testing.T) {
		cfg := NewConfig(WithAPIKey("gsk-test"))

		assert.Equal(t, "gsk-test", cfg.APIKey)
	})

	t.Run("with generation settings", func(t *testing.T) {
		cfg := NewConfig(WithTemperature(0.2), WithMaxTokens(512))

		assert.Equal(t, 0.2, cfg.Temperature)
		assert.Equal(t, 512, cfg.MaxTokens)
	})
}

func TestConfig_Normalize(t *testing.T) {
	t.Run("adds v1 suffix", func(t *testing.T) {
		cfg := NewConfig(
			WithEmbeddingHost("http://localhost:11434"),
			WithChatHost("https://api.groq.com/openai"),
		)
		cfg.Normalize()

		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
		assert.Equal(t, "https://api.groq.com/openai/v1", cfg.ChatHost)
	})

	t.Run("strips trailing slash before suffix", func(t *testing.T) {
		cfg := NewConfig(WithEmbeddingHost("http://localhost:11434/"))
		cfg.Normalize()

		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	})

	t.Run("leaves canonical hosts alone", func(t *testing.T) {
		cfg := NewConfig()
		cfg.Normalize()

		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
		assert.Equal(t, "https://api.groq.com/openai/v1", cfg.ChatHost)
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return NewConfig(WithAPIKey("gsk-test"))
	}

	t.Run("valid config", func(t *testing.T) {
		require.NoError(t, valid().Validate())
	})

	t.Run("normalizes before validating", func(t *testing.T) {
		cfg := valid()
		cfg.ChatHost = "https://api.groq.com/openai"
		require.NoError(t, cfg.Validate())
		assert.Equal(t, "https://api.groq.com/openai/v1", cfg.ChatHost)
	})

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing embedding host", func(c *Config) { c.EmbeddingHost = "" }},
		{"missing chat host", func(c *Config) { c.ChatHost = "" }},
		{"missing embedding model", func(c *Config) { c.EmbeddingModel = "" }},
		{"missing chat model", func(c *Config) { c.ChatModel = "" }},
		{"missing api key", func(c *Config) { c.APIKey = "" }},
		{"negative temperature", func(c *Config) { c.Temperature = -0.1 }},
		{"temperature too high", func(c *Config) { c.Temperature = 2.5 }},
		{"zero max tokens", func(c *Config) { c.MaxTokens = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
