package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	assert.Equal(t, "embeddinggemma", cfg.EmbeddingModel)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.ChatHost)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.ChatModel)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "gsk-test")
	t.Setenv("CHAT_MODEL", "llama-3.1-8b-instant")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gsk-test", cfg.GroqAPIKey)
	assert.Equal(t, "llama-3.1-8b-instant", cfg.ChatModel)
}

func TestRequireAPIKey(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		cfg := &Config{}
		assert.ErrorIs(t, cfg.RequireAPIKey(), ErrMissingAPIKey)
	})

	t.Run("present", func(t *testing.T) {
		cfg := &Config{GroqAPIKey: "gsk-test"}
		assert.NoError(t, cfg.RequireAPIKey())
	})
}
