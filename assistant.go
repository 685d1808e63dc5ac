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


// Package campusbot wires the storage backend, the AI provider, and the
// conversational components into one university assistant.
package campusbot

import (
	"log/slog"

	"github.com/poiesic/campusbot/ai"
	"github.com/poiesic/campusbot/ai/openai"
	"github.com/poiesic/campusbot/chat"
	"github.com/poiesic/campusbot/ingest"
	"github.com/poiesic/campusbot/leads"
	"github.com/poiesic/campusbot/prompt"
	"github.com/poiesic/campusbot/retrieval"
	"github.com/poiesic/campusbot/router"
	"github.com/poiesic/campusbot/storage"
	"github.com/poiesic/campusbot/storage/badger"
)

// Assistant owns the storage backend, the repositories, and the AI provider,
// and builds sessions and ingestion pipelines on top of them.
type Assistant struct {
	backend   *badger.Backend
	chunkRepo storage.ChunkRepository
	leadRepo  storage.LeadRepository
	provider  ai.AIProvider
	persona   string
	logger    *slog.Logger
}

// AssistantOption configures an Assistant.
type AssistantOption func(*assistantOptions)

type assistantOptions struct {
	aiConfig *ai.Config
	provider ai.AIProvider
	persona  string
}

// WithAIConfig sets the AI service configuration used to build the provider.
func WithAIConfig(config *ai.Config) AssistantOption {
	return func(o *assistantOptions) {
		o.aiConfig = config
	}
}

// WithProvider injects a pre-built AI provider, bypassing the AI config.
// Used by tests to run against mocks.
func WithProvider(provider ai.AIProvider) AssistantOption {
	return func(o *assistantOptions) {
		o.provider = provider
	}
}

// WithPersona overrides the default system persona used in sessions.
func WithPersona(persona string) AssistantOption {
	return func(o *assistantOptions) {
		o.persona = persona
	}
}

// NewAssistant opens the database at filePath and initializes the AI services.
func NewAssistant(filePath string, opts ...AssistantOption) (*Assistant, error) {
	options := &assistantOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	chunkRepo, err := badger.NewChunkRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	leadRepo := badger.NewLeadRepository(backend)

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			chunkRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Assistant{
		backend:   backend,
		chunkRepo: chunkRepo,
		leadRepo:  leadRepo,
		provider:  provider,
		persona:   options.persona,
		logger:    slog.Default(),
	}, nil
}

// Close releases the AI provider, the repositories, and the backend.
func (a *Assistant) Close() error {
	if err := a.provider.Close(); err != nil {
		a.logger.Error("error closing AI provider", "err", err)
	}

	if err := a.leadRepo.Close(); err != nil {
		a.logger.Error("error closing lead repository", "err", err)
		return err
	}
	if err := a.chunkRepo.Close(); err != nil {
		a.logger.Error("error closing chunk repository", "err", err)
		return err
	}

	if err := a.backend.Close(); err != nil {
		a.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// ChunkRepository exposes the document chunk store.
func (a *Assistant) ChunkRepository() storage.ChunkRepository {
	return a.chunkRepo
}

// LeadRepository exposes the collected lead store.
func (a *Assistant) LeadRepository() storage.LeadRepository {
	return a.leadRepo
}

// NewIngestionPipeline builds a pipeline that writes into this assistant's
// chunk store.
func (a *Assistant) NewIngestionPipeline(opts ...ingest.Option) (*ingest.Pipeline, error) {
	return ingest.NewPipeline(a.chunkRepo, a.provider, opts...)
}

// NewSession builds a conversation session backed by this assistant's
// stores and AI services.
func (a *Assistant) NewSession(opts ...chat.Option) (*chat.Session, error) {
	retriever, err := retrieval.NewRetriever(a.chunkRepo, a.provider)
	if err != nil {
		return nil, err
	}

	var assemblerOpts []prompt.Option
	if a.persona != "" {
		assemblerOpts = append(assemblerOpts, prompt.WithPersona(a.persona))
	}

	return chat.NewSession(
		router.New(),
		retriever,
		prompt.NewAssembler(assemblerOpts...),
		a.provider.ResponseGenerator(),
		leads.NewExtractor(),
		a.leadRepo,
		opts...,
	)
}
