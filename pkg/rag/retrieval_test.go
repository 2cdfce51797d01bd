package rag

import (
	"context"
	"errors"
	"testing"

	"ai-tutor-be/pkg/vectorindex"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetrievePinnedTextOverridesSearch(t *testing.T) {
	embedder := &fakeEmbedder{dimension: 4, vector: []float32{1, 0, 0, 0}}
	index := &fakeIndex{
		dimension: 4,
		hits: []vectorindex.Hit{
			{Score: 0.9, Payload: vectorindex.Payload{Content: "indexed passage", Section: "ROS 2 Fundamentals"}},
		},
	}
	retriever := NewRetriever(embedder, index, nopLogger{})

	retrieval, err := retriever.Retrieve(context.Background(), "what is a node?", "Nodes are independent processes.", 3)
	require.NoError(t, err)

	require.Len(t, retrieval.Documents, 1)
	doc := retrieval.Documents[0]
	assert.Equal(t, "Nodes are independent processes.", doc.Content)
	assert.Equal(t, 1.0, doc.Score)
	assert.Equal(t, SectionSelectedText, doc.Section)
	assert.Equal(t, "user_selection", doc.Metadata["source"])
	assert.False(t, retrieval.Degraded)

	// Pinned text must bypass both the embedder and the index.
	assert.Equal(t, 0, embedder.calls)
	assert.Equal(t, 0, index.searchCalls)
}

func TestRetrievePinnedTextWorksWithBrokenIndex(t *testing.T) {
	embedder := &fakeEmbedder{dimension: 4, err: errors.New("embedder down")}
	index := &fakeIndex{dimension: 4, searchErr: errors.New("index down")}
	retriever := NewRetriever(embedder, index, nopLogger{})

	retrieval, err := retriever.Retrieve(context.Background(), "explain", "pinned passage", 3)
	require.NoError(t, err)
	require.Len(t, retrieval.Documents, 1)
	assert.Equal(t, "pinned passage", retrieval.Documents[0].Content)
}

func TestRetrieveMapsHitsInOrder(t *testing.T) {
	embedder := &fakeEmbedder{dimension: 4, vector: []float32{1, 0, 0, 0}}
	index := &fakeIndex{
		dimension: 4,
		hits: []vectorindex.Hit{
			{Score: 0.92, Payload: vectorindex.Payload{Content: "first", Section: "A", Metadata: map[string]string{"week": "1"}}},
			{Score: 0.81, Payload: vectorindex.Payload{Content: "second", Section: "B"}},
			{Score: 0.47, Payload: vectorindex.Payload{Content: "third", Section: "C"}},
		},
	}
	retriever := NewRetriever(embedder, index, nopLogger{})

	retrieval, err := retriever.Retrieve(context.Background(), "query", "", 3)
	require.NoError(t, err)
	require.Len(t, retrieval.Documents, 3)

	assert.Equal(t, "first", retrieval.Documents[0].Content)
	assert.Equal(t, 0.92, retrieval.Documents[0].Score)
	assert.Equal(t, "1", retrieval.Documents[0].Metadata["week"])
	assert.Equal(t, "second", retrieval.Documents[1].Content)
	assert.Equal(t, "third", retrieval.Documents[2].Content)
	assert.False(t, retrieval.Degraded)
}

func TestRetrieveEmbeddingFailureIsFatal(t *testing.T) {
	embedder := &fakeEmbedder{dimension: 4, err: errors.New("connection refused")}
	index := &fakeIndex{dimension: 4}
	retriever := NewRetriever(embedder, index, nopLogger{})

	_, err := retriever.Retrieve(context.Background(), "query", "", 3)
	require.Error(t, err)

	var pipelineErr *PipelineError
	require.ErrorAs(t, err, &pipelineErr)
	assert.Equal(t, StageEmbedding, pipelineErr.Stage)
	assert.Equal(t, 0, index.searchCalls)
}

func TestRetrieveIndexFailureDegrades(t *testing.T) {
	embedder := &fakeEmbedder{dimension: 4, vector: []float32{1, 0, 0, 0}}
	index := &fakeIndex{dimension: 4, searchErr: errors.New("dial tcp: connection refused")}
	retriever := NewRetriever(embedder, index, nopLogger{})

	retrieval, err := retriever.Retrieve(context.Background(), "query", "", 3)
	require.NoError(t, err)
	assert.True(t, retrieval.Degraded)
	assert.Empty(t, retrieval.Documents)
}

func TestRetrieveDefaultsTopK(t *testing.T) {
	embedder := &fakeEmbedder{dimension: 4, vector: []float32{1, 0, 0, 0}}
	index := &fakeIndex{dimension: 4}
	retriever := NewRetriever(embedder, index, nopLogger{})

	_, err := retriever.Retrieve(context.Background(), "query", "", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, index.searchCalls)
}
