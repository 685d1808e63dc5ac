package badger

import (
	"context"
	"testing"

	"github.com/poiesic/campusbot/core"
	"github.com/poiesic/campusbot/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddChunks_AssignsIDsAndOrdinals(t *testing.T) {
	chunkRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		chunkRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	chunks := []*core.Chunk{
		{Collection: core.CollectionSyllabus, Contents: "Semester 1: Programming Fundamentals"},
		{Collection: core.CollectionSyllabus, Contents: "Semester 2: Data Structures"},
	}

	added, err := chunkRepo.AddChunks(ctx, chunks...)
	require.NoError(t, err)
	require.Len(t, added, 2)

	assert.NotZero(t, added[0].Id)
	assert.NotZero(t, added[1].Id)
	assert.NotEqual(t, added[0].Id, added[1].Id)
	assert.Less(t, added[0].Ordinal, added[1].Ordinal)
	assert.False(t, added[0].InsertedAt.IsZero())
}

func TestAddChunks_ContentAddressedIDs(t *testing.T) {
	chunkRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		chunkRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	a := &core.Chunk{Collection: core.CollectionFoodMenu, Contents: "Monday: Idli Sambar"}
	b := &core.Chunk{Collection: core.CollectionBusDetails, Contents: "Monday: Idli Sambar"}

	_, err = chunkRepo.AddChunks(ctx, a, b)
	require.NoError(t, err)

	// Same contents in different collections must not collide.
	assert.NotEqual(t, a.Id, b.Id)
}

func TestAddChunks_RejectsInvalid(t *testing.T) {
	chunkRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		chunkRepo.Close()
		backend.Close()
	}()

	_, err = chunkRepo.AddChunks(context.Background(), &core.Chunk{
		Collection: core.Collection("unknown"),
		Contents:   "text",
	})
	assert.ErrorIs(t, err, core.ErrInvalidCollection)
}

func TestGetChunk(t *testing.T) {
	chunkRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		chunkRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	chunk := &core.Chunk{
		Collection: core.CollectionAdmission,
		Contents:   "Application starts: May 1st",
		Vector:     []float32{0.1, 0.2, 0.3},
	}
	_, err = chunkRepo.AddChunks(ctx, chunk)
	require.NoError(t, err)

	t.Run("existing chunk", func(t *testing.T) {
		got, err := chunkRepo.GetChunk(ctx, core.CollectionAdmission, chunk.Id)
		require.NoError(t, err)
		assert.Equal(t, chunk.Contents, got.Contents)
		assert.Equal(t, chunk.Vector, got.Vector)
	})

	t.Run("missing chunk", func(t *testing.T) {
		_, err := chunkRepo.GetChunk(ctx, core.CollectionAdmission, core.ID(424242))
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("wrong collection", func(t *testing.T) {
		_, err := chunkRepo.GetChunk(ctx, core.CollectionSyllabus, chunk.Id)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestFindSimilar_Ranking(t *testing.T) {
	chunkRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		chunkRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	chunks := []*core.Chunk{
		{Collection: core.CollectionBusDetails, Contents: "Route to Tambaram", Vector: []float32{0.9, 0.1, 0.0}},
		{Collection: core.CollectionBusDetails, Contents: "Route to Velachery", Vector: []float32{0.1, 0.9, 0.0}},
		{Collection: core.CollectionBusDetails, Contents: "Route to OMR", Vector: []float32{0.8, 0.2, 0.0}},
	}
	_, err = chunkRepo.AddChunks(ctx, chunks...)
	require.NoError(t, err)

	results, err := chunkRepo.FindSimilar(ctx, core.CollectionBusDetails, []float32{1, 0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "Route to Tambaram", results[0].Chunk.Contents)
	assert.Equal(t, "Route to OMR", results[1].Chunk.Contents)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestFindSimilar_StableTieBreak(t *testing.T) {
	chunkRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		chunkRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	// Identical vectors: ingestion order must decide.
	chunks := []*core.Chunk{
		{Collection: core.CollectionFoodMenu, Contents: "first ingested", Vector: []float32{0.5, 0.5}},
		{Collection: core.CollectionFoodMenu, Contents: "second ingested", Vector: []float32{0.5, 0.5}},
		{Collection: core.CollectionFoodMenu, Contents: "third ingested", Vector: []float32{0.5, 0.5}},
	}
	_, err = chunkRepo.AddChunks(ctx, chunks...)
	require.NoError(t, err)

	results, err := chunkRepo.FindSimilar(ctx, core.CollectionFoodMenu, []float32{1, 1}, 3)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "first ingested", results[0].Chunk.Contents)
	assert.Equal(t, "second ingested", results[1].Chunk.Contents)
	assert.Equal(t, "third ingested", results[2].Chunk.Contents)
}

func TestFindSimilar_EmptyCollection(t *testing.T) {
	chunkRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		chunkRepo.Close()
		backend.Close()
	}()

	results, err := chunkRepo.FindSimilar(context.Background(), core.CollectionSyllabus, []float32{1, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFindSimilar_SkipsChunksWithoutVectors(t *testing.T) {
	chunkRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		chunkRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	_, err = chunkRepo.AddChunks(ctx,
		&core.Chunk{Collection: core.CollectionSyllabus, Contents: "not yet embedded"},
		&core.Chunk{Collection: core.CollectionSyllabus, Contents: "embedded", Vector: []float32{1, 0}},
	)
	require.NoError(t, err)

	results, err := chunkRepo.FindSimilar(ctx, core.CollectionSyllabus, []float32{1, 0}, 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "embedded", results[0].Chunk.Contents)
}

func TestFindSimilar_InvalidLimit(t *testing.T) {
	chunkRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		chunkRepo.Close()
		backend.Close()
	}()

	_, err = chunkRepo.FindSimilar(context.Background(), core.CollectionSyllabus, []float32{1}, 0)
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)
}

func TestCountChunks_And_DeleteCollection(t *testing.T) {
	chunkRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		chunkRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	_, err = chunkRepo.AddChunks(ctx,
		&core.Chunk{Collection: core.CollectionAdmission, Contents: "Eligibility criteria", Vector: []float32{1}},
		&core.Chunk{Collection: core.CollectionAdmission, Contents: "Fee structure", Vector: []float32{1}},
		&core.Chunk{Collection: core.CollectionSyllabus, Contents: "Semester 4", Vector: []float32{1}},
	)
	require.NoError(t, err)

	count, err := chunkRepo.CountChunks(ctx, core.CollectionAdmission)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, chunkRepo.DeleteCollection(ctx, core.CollectionAdmission))

	count, err = chunkRepo.CountChunks(ctx, core.CollectionAdmission)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// Other collections untouched
	count, err = chunkRepo.CountChunks(ctx, core.CollectionSyllabus)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
