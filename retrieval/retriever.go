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


// Package retrieval fetches the document chunks most relevant to a query
// from a single collection. The query is embedded and ranked against the
// stored chunk vectors; an empty or unknown collection yields an empty
// result rather than an error.
package retrieval

import (
	"context"
	"log/slog"

	"github.com/poiesic/campusbot/ai"
	"github.com/poiesic/campusbot/core"
	"github.com/poiesic/campusbot/storage"
)

// DefaultTopK is the number of chunks retrieved per query when not overridden.
const DefaultTopK = 4

// Retriever performs semantic retrieval over a chunk repository.
type Retriever struct {
	chunkRepository storage.ChunkRepository
	embedder        ai.Embedder
	topK            int
	logger          *slog.Logger
}

// Option configures a Retriever.
type Option func(*Retriever) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithTopK sets the number of chunks retrieved per query.
// Default is DefaultTopK.
func WithTopK(topK int) Option {
	return func(r *Retriever) error {
		if topK <= 0 {
			return ErrInvalidTopK
		}
		r.topK = topK
		return nil
	}
}

// NewRetriever creates a new retriever.
func NewRetriever(
	chunkRepository storage.ChunkRepository,
	provider ai.AIProvider,
	opts ...Option,
) (*Retriever, error) {
	if chunkRepository == nil {
		return nil, ErrChunkRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	r := &Retriever{
		chunkRepository: chunkRepository,
		embedder:        provider.Embedder(),
		topK:            DefaultTopK,
		logger:          slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Retrieve returns up to top-k chunks from the collection, ranked by
// similarity to the query. An empty collection yields an empty result.
func (r *Retriever) Retrieve(ctx context.Context, collection core.Collection, query string) ([]*core.ScoredChunk, error) {
	embedding, err := r.embedder.EmbedText(ctx, query)
	if err != nil {
		r.logger.Error("error generating embedding for query", "collection", collection, "err", err)
		return nil, err
	}

	results, err := r.chunkRepository.FindSimilar(ctx, collection, embedding, r.topK)
	if err != nil {
		r.logger.Error("error querying for similar chunks", "collection", collection, "err", err)
		return nil, err
	}

	r.logger.Debug("retrieved chunks", "collection", collection, "count", len(results))
	return results, nil
}
