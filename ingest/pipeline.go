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


// Package ingest loads documents into the chunk store. Text files are split
// into paragraph/sentence chunks, CSV files into one labelled chunk per row.
// Chunks are embedded in concurrent batches, then written in document order
// so retrieval tie-breaks follow the source.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/campusbot/ai"
	"github.com/poiesic/campusbot/core"
	"github.com/poiesic/campusbot/storage"
)

// DefaultBatchSize is the number of texts embedded per worker task.
const DefaultBatchSize = 16

// Pipeline ingests documents into collections.
type Pipeline struct {
	chunkRepository storage.ChunkRepository
	embedder        ai.Embedder
	pool            *ants.Pool
	batchSize       int
	maxChunkChars   int
	logger          *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithBatchSize sets the number of texts embedded per worker task.
// Default is DefaultBatchSize.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size >= 1 {
			p.batchSize = size
		}
		return nil
	}
}

// WithMaxChunkChars sets the chunk size limit for text documents.
// Default is DefaultMaxChunkChars.
func WithMaxChunkChars(chars int) Option {
	return func(p *Pipeline) error {
		if chars >= 1 {
			p.maxChunkChars = chars
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	chunkRepository storage.ChunkRepository,
	provider ai.AIProvider,
	opts ...Option,
) (*Pipeline, error) {
	if chunkRepository == nil {
		return nil, ErrChunkRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		chunkRepository: chunkRepository,
		embedder:        provider.Embedder(),
		pool:            pool,
		batchSize:       DefaultBatchSize,
		maxChunkChars:   DefaultMaxChunkChars,
		logger:          slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}
	p.logger = p.logger.With("component", "ingest-pipeline")

	return p, nil
}

// Release frees the worker pool.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

// IngestFile ingests a document chosen by extension: .csv becomes labelled
// row chunks, .txt and .md become text chunks.
// Returns the number of chunks written.
func (p *Pipeline) IngestFile(ctx context.Context, collection core.Collection, path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	source := filepath.Base(path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		texts, err := ChunksFromCSV(file)
		if err != nil {
			return 0, fmt.Errorf("chunking %s: %w", source, err)
		}
		return p.ingestTexts(ctx, collection, source, texts)
	case ".txt", ".md":
		data, err := os.ReadFile(path)
		if err != nil {
			return 0, err
		}
		return p.IngestText(ctx, collection, source, string(data))
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// IngestText chunks and ingests free text under the given source label.
// Returns the number of chunks written.
func (p *Pipeline) IngestText(ctx context.Context, collection core.Collection, source, text string) (int, error) {
	texts := ChunkText(text, p.maxChunkChars)
	if len(texts) == 0 {
		return 0, ErrEmptyDocument
	}
	return p.ingestTexts(ctx, collection, source, texts)
}

// ingestTexts embeds the texts in concurrent batches and writes the chunks
// in input order.
func (p *Pipeline) ingestTexts(ctx context.Context, collection core.Collection, source string, texts []string) (int, error) {
	if err := core.ValidateCollection(collection); err != nil {
		return 0, err
	}

	p.logger.Info("ingesting document", "collection", collection, "source", source, "chunks", len(texts))

	chunks := make([]*core.Chunk, len(texts))

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	for start := 0; start < len(texts); start += p.batchSize {
		end := start + p.batchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch := texts[start:end]
		offset := start

		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()

			vectors, err := p.embedder.EmbedTexts(ctx, batch)
			if err != nil {
				fail(err)
				return
			}
			if len(vectors) != len(batch) {
				fail(fmt.Errorf("%w: expected %d, received %d", ErrEmbeddingMismatch, len(batch), len(vectors)))
				return
			}
			for i, text := range batch {
				chunks[offset+i] = &core.Chunk{
					Collection: collection,
					Contents:   text,
					Source:     source,
					Vector:     vectors[i],
				}
			}
		})
		if submitErr != nil {
			wg.Done()
			fail(submitErr)
			break
		}
	}
	wg.Wait()

	if firstErr != nil {
		return 0, firstErr
	}

	added, err := p.chunkRepository.AddChunks(ctx, chunks...)
	if err != nil {
		return 0, err
	}
	p.logger.Info("document ingested", "collection", collection, "source", source, "chunks", len(added))
	return len(added), nil
}
