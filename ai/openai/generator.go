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


package openai

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/poiesic/campusbot/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// ErrEmptyCompletion indicates the chat API returned no choices.
var ErrEmptyCompletion = errors.New("chat completion returned no choices")

// ResponseGenerator implements ai.ResponseGenerator using OpenAI-compatible
// chat completion APIs.
type ResponseGenerator struct {
	client      *openai.LLM
	temperature float64
	maxTokens   int
	logger      *slog.Logger
}

// newResponseGenerator is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newResponseGenerator(config *ai.Config) (*ResponseGenerator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken(config.APIKey),
		openai.WithModel(config.ChatModel),
	)
	if err != nil {
		return nil, err
	}

	return &ResponseGenerator{
		client:      client,
		temperature: config.Temperature,
		maxTokens:   config.MaxTokens,
		logger:      slog.Default().With("component", "openai-generator"),
	}, nil
}

// NewResponseGenerator creates a new response generator using the provided configuration.
//
// Returns ai.ResponseGenerator interface to enforce abstraction.
func NewResponseGenerator(config *ai.Config) (ai.ResponseGenerator, error) {
	return newResponseGenerator(config)
}

// Generate sends the message sequence to the chat model and returns the reply text.
func (g *ResponseGenerator) Generate(ctx context.Context, messages []ai.Message) (string, error) {
	g.logger.Debug("generating chat completion", "messages", len(messages))

	content := make([]llms.MessageContent, 0, len(messages))
	for _, msg := range messages {
		content = append(content, llms.MessageContent{
			Role:  chatMessageType(msg.Role),
			Parts: []llms.ContentPart{llms.TextPart(msg.Content)},
		})
	}

	response, err := g.client.GenerateContent(ctx, content,
		llms.WithTemperature(g.temperature),
		llms.WithMaxTokens(g.maxTokens),
	)
	if err != nil {
		g.logger.Error("chat completion failed", "err", err)
		return "", err
	}

	if len(response.Choices) == 0 {
		g.logger.Warn("chat completion returned no choices")
		return "", ErrEmptyCompletion
	}

	reply := strings.TrimSpace(response.Choices[0].Content)
	if reply == "" {
		return "", ErrEmptyCompletion
	}
	return reply, nil
}

// chatMessageType maps ai.Role to the langchaingo chat message type.
func chatMessageType(role ai.Role) llms.ChatMessageType {
	switch role {
	case ai.RoleSystem:
		return llms.ChatMessageTypeSystem
	case ai.RoleAssistant:
		return llms.ChatMessageTypeAI
	default:
		return llms.ChatMessageTypeHuman
	}
}
