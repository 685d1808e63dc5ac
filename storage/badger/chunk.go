package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/campusbot/core"
	"github.com/poiesic/campusbot/storage"
)

// ChunkRepository implements storage.ChunkRepository for BadgerDB.
// Each collection gets its own key range and ingestion ordinal sequence.
type ChunkRepository struct {
	backend  *Backend
	ordinals map[core.Collection]*badger.Sequence
}

var _ storage.ChunkRepository = (*ChunkRepository)(nil)

// NewChunkRepository creates a new ChunkRepository.
func NewChunkRepository(backend *Backend) (storage.ChunkRepository, error) {
	ordinals := make(map[core.Collection]*badger.Sequence, len(core.Collections()))
	for _, collection := range core.Collections() {
		seq, err := backend.GetSequence(makeChunkSeqName(collection))
		if err != nil {
			for _, s := range ordinals {
				s.Release()
			}
			return nil, err
		}
		ordinals[collection] = seq
	}

	return &ChunkRepository{
		backend:  backend,
		ordinals: ordinals,
	}, nil
}

// Close releases the ordinal sequences.
func (r *ChunkRepository) Close() error {
	var firstErr error
	for _, seq := range r.ordinals {
		if err := seq.Release(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// AddChunks adds one or more chunks to their collections.
func (r *ChunkRepository) AddChunks(ctx context.Context, chunks ...*core.Chunk) ([]*core.Chunk, error) {
	for _, chunk := range chunks {
		if err := core.ValidateChunk(chunk); err != nil {
			return nil, err
		}
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, chunk := range chunks {
			if chunk.Id == 0 {
				chunk.Id = core.IDFromContent(string(chunk.Collection) + ":" + chunk.Contents)
			}

			seq := r.ordinals[chunk.Collection]
			ordinal, err := seq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if ordinal == 0 {
				ordinal, err = seq.Next()
				if err != nil {
					return err
				}
			}
			chunk.Ordinal = ordinal
			chunk.InsertedAt = time.Now().UTC()

			key := makeChunkKey(chunk.Collection, chunk.Id)
			if err := tx.Set(key, storage.MarshalChunk(chunk)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return chunks, err
}

// GetChunk retrieves a single chunk by collection and ID.
func (r *ChunkRepository) GetChunk(ctx context.Context, collection core.Collection, id core.ID) (*core.Chunk, error) {
	var result *core.Chunk
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeChunkKey(collection, id))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var unmarshalErr error
			result, unmarshalErr = storage.UnmarshalChunk(val)
			return unmarshalErr
		})
	}, false)
	return result, err
}

// CountChunks returns the number of chunks stored in a collection.
func (r *ChunkRepository) CountChunks(ctx context.Context, collection core.Collection) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeCollectionPrefix(collection)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// FindSimilar finds the chunks in a collection most similar to the given vector.
// Similarity is the dot product, which equals cosine similarity for normalized
// vectors. Empty or missing collections yield an empty result.
func (r *ChunkRepository) FindSimilar(ctx context.Context, collection core.Collection, vector []float32, limit int) ([]*core.ScoredChunk, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidQuery
	}

	var results []*core.ScoredChunk
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeCollectionPrefix(collection)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var chunk *core.Chunk
			err := iter.Item().Value(func(val []byte) error {
				var unmarshalErr error
				chunk, unmarshalErr = storage.UnmarshalChunk(val)
				return unmarshalErr
			})
			if err != nil {
				return err
			}

			// Skip chunks without embeddings
			if chunk == nil || len(chunk.Vector) == 0 {
				continue
			}

			results = append(results, &core.ScoredChunk{
				Chunk: chunk,
				Score: dotProduct(vector, chunk.Vector),
			})
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	// Sort by score descending, ties by ingestion order
	slices.SortFunc(results, func(a, b *core.ScoredChunk) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		if a.Chunk.Ordinal < b.Chunk.Ordinal {
			return -1
		}
		if a.Chunk.Ordinal > b.Chunk.Ordinal {
			return 1
		}
		return 0
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// DeleteCollection removes every chunk in a collection.
func (r *ChunkRepository) DeleteCollection(ctx context.Context, collection core.Collection) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeCollectionPrefix(collection)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)

		var keys [][]byte
		for iter.Rewind(); iter.Valid(); iter.Next() {
			keys = append(keys, iter.Item().KeyCopy(nil))
		}
		iter.Close()

		for _, key := range keys {
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// dotProduct computes the dot product of two vectors.
// Mismatched lengths are truncated to the shorter vector.
func dotProduct(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float32
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
