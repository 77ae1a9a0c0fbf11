package embedding

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingEmbedder struct{ calls int }

func (c *countingEmbedder) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	c.calls++
	vecs := make([][]float32, len(texts))
	for i := range texts {
		vecs[i] = []float32{1, 2, 3}
	}
	return vecs, nil
}

func (c *countingEmbedder) EmbedQuery(_ context.Context, _ string) ([]float32, error) {
	return []float32{1, 2, 3}, nil
}

func TestEmbedChunksEmptyInputSkipsBackend(t *testing.T) {
	e := &countingEmbedder{}
	got, err := EmbedChunks(context.Background(), e, nil)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Zero(t, e.calls)
}

func TestEmbedChunksPreservesLengthAndOrder(t *testing.T) {
	e := &countingEmbedder{}
	got, err := EmbedChunks(context.Background(), e, []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, 1, e.calls)
}
