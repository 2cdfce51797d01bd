package rag

import (
	"context"
	"errors"
	"testing"

	"ai-tutor-be/pkg/llm"
	"ai-tutor-be/pkg/vectorindex"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, embedder *fakeEmbedder, index *fakeIndex, completion *fakeLLM, store *fakeTurnStore) *Engine {
	t.Helper()
	engine, err := NewEngine(embedder, index, completion, store, nopLogger{}, Config{})
	require.NoError(t, err)
	return engine
}

func TestNewEngineRejectsDimensionMismatch(t *testing.T) {
	embedder := &fakeEmbedder{dimension: 384}
	index := &fakeIndex{dimension: 1536}

	_, err := NewEngine(embedder, index, &fakeLLM{}, &fakeTurnStore{}, nopLogger{}, Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "384")
	assert.Contains(t, err.Error(), "1536")
}

func TestGenerateHappyPath(t *testing.T) {
	embedder := &fakeEmbedder{dimension: 4, vector: []float32{1, 0, 0, 0}}
	index := &fakeIndex{
		dimension: 4,
		hits: []vectorindex.Hit{
			{Score: 0.88, Payload: vectorindex.Payload{Content: "nodes communicate via topics", Section: "ROS 2 Fundamentals"}},
		},
	}
	completion := &fakeLLM{result: &llm.ChatResult{Content: "A node is a process.", TokensUsed: 42}}
	store := &fakeTurnStore{}
	engine := newTestEngine(t, embedder, index, completion, store)

	userId := uuid.New()
	sessionId := uuid.New()
	result, err := engine.Generate(context.Background(), GenerateInput{
		UserId:    userId,
		SessionId: sessionId,
		Query:     "what is a node?",
	})
	require.NoError(t, err)

	assert.Equal(t, "A node is a process.", result.Answer)
	assert.Equal(t, 42, result.TokensUsed)
	assert.False(t, result.Degraded)
	require.Len(t, result.Sources, 1)
	assert.Equal(t, "nodes communicate via topics", result.Sources[0].Content)

	// Both turns persisted, user first.
	require.Len(t, store.appended, 2)
	assert.Equal(t, RoleUser, store.appended[0].Role)
	assert.Equal(t, "what is a node?", store.appended[0].Content)
	assert.Equal(t, RoleAssistant, store.appended[1].Role)
	assert.Equal(t, "A node is a process.", store.appended[1].Content)
	assert.Equal(t, userId, store.appended[0].UserId)
	assert.Equal(t, sessionId, store.appended[1].SessionId)

	// Defaults applied to the completion call.
	assert.Equal(t, 0.7, completion.lastOptions.Temperature)
	assert.Equal(t, 1000, completion.lastOptions.MaxTokens)
}

func TestGenerateZeroTemperatureIsRespected(t *testing.T) {
	embedder := &fakeEmbedder{dimension: 4, vector: []float32{1, 0, 0, 0}}
	index := &fakeIndex{dimension: 4}
	completion := &fakeLLM{result: &llm.ChatResult{Content: "deterministic answer"}}
	// Sentinel value so an untouched option is distinguishable from 0.
	completion.lastOptions.Temperature = -1

	temperature := 0.0
	engine, err := NewEngine(embedder, index, completion, &fakeTurnStore{}, nopLogger{}, Config{
		Temperature: &temperature,
	})
	require.NoError(t, err)

	_, err = engine.Generate(context.Background(), GenerateInput{
		UserId:    uuid.New(),
		SessionId: uuid.New(),
		Query:     "question",
	})
	require.NoError(t, err)

	// Greedy decoding must reach the provider, not be swapped for 0.7.
	assert.Equal(t, 0.0, completion.lastOptions.Temperature)
}

func TestGenerateDegradedReturnsEmptySources(t *testing.T) {
	embedder := &fakeEmbedder{dimension: 4, vector: []float32{1, 0, 0, 0}}
	index := &fakeIndex{dimension: 4, searchErr: errors.New("index down")}
	completion := &fakeLLM{result: &llm.ChatResult{Content: "best effort answer"}}
	engine := newTestEngine(t, embedder, index, completion, &fakeTurnStore{})

	result, err := engine.Generate(context.Background(), GenerateInput{
		UserId:    uuid.New(),
		SessionId: uuid.New(),
		Query:     "question",
	})
	require.NoError(t, err)

	assert.True(t, result.Degraded)
	assert.NotNil(t, result.Sources)
	assert.Empty(t, result.Sources)
	assert.Equal(t, "best effort answer", result.Answer)

	// No evidence message reaches the model.
	for _, msg := range completion.lastHistory {
		assert.NotContains(t, msg.Content, "Retrieved Context")
	}
}

func TestGenerateCompletionFailureIsCompletionStage(t *testing.T) {
	embedder := &fakeEmbedder{dimension: 4, vector: []float32{1, 0, 0, 0}}
	index := &fakeIndex{dimension: 4}
	completion := &fakeLLM{err: errors.New("model timeout")}
	store := &fakeTurnStore{}
	engine := newTestEngine(t, embedder, index, completion, store)

	_, err := engine.Generate(context.Background(), GenerateInput{
		UserId:    uuid.New(),
		SessionId: uuid.New(),
		Query:     "question",
	})
	require.Error(t, err)

	var pipelineErr *PipelineError
	require.ErrorAs(t, err, &pipelineErr)
	assert.Equal(t, StageCompletion, pipelineErr.Stage)

	// A failed completion persists nothing.
	assert.Empty(t, store.appended)
}

func TestGenerateSurvivesPersistenceFailure(t *testing.T) {
	embedder := &fakeEmbedder{dimension: 4, vector: []float32{1, 0, 0, 0}}
	index := &fakeIndex{dimension: 4}
	completion := &fakeLLM{result: &llm.ChatResult{Content: "the answer", TokensUsed: 7}}
	store := &fakeTurnStore{appendErr: errors.New("disk full")}
	engine := newTestEngine(t, embedder, index, completion, store)

	result, err := engine.Generate(context.Background(), GenerateInput{
		UserId:    uuid.New(),
		SessionId: uuid.New(),
		Query:     "question",
	})
	require.NoError(t, err)
	assert.Equal(t, "the answer", result.Answer)
	assert.Equal(t, 7, result.TokensUsed)
}

func TestGenerateSkipsAssistantTurnWhenUserTurnFails(t *testing.T) {
	embedder := &fakeEmbedder{dimension: 4, vector: []float32{1, 0, 0, 0}}
	index := &fakeIndex{dimension: 4}
	completion := &fakeLLM{result: &llm.ChatResult{Content: "answer"}}
	store := &fakeTurnStore{appendErr: errors.New("write failed"), appendOnly: RoleUser}
	engine := newTestEngine(t, embedder, index, completion, store)

	result, err := engine.Generate(context.Background(), GenerateInput{
		UserId:    uuid.New(),
		SessionId: uuid.New(),
		Query:     "question",
	})
	require.NoError(t, err)
	assert.Equal(t, "answer", result.Answer)

	// An orphaned assistant turn would corrupt replay ordering.
	assert.Empty(t, store.appended)
}

func TestGeneratePinnedTextFlowsThroughPipeline(t *testing.T) {
	embedder := &fakeEmbedder{dimension: 4}
	index := &fakeIndex{dimension: 4}
	completion := &fakeLLM{result: &llm.ChatResult{Content: "explanation"}}
	engine := newTestEngine(t, embedder, index, completion, &fakeTurnStore{})

	result, err := engine.Generate(context.Background(), GenerateInput{
		UserId:     uuid.New(),
		SessionId:  uuid.New(),
		Query:      "explain this",
		PinnedText: "Gazebo simulates rigid body dynamics.",
	})
	require.NoError(t, err)

	require.Len(t, result.Sources, 1)
	assert.Equal(t, 1.0, result.Sources[0].Score)
	assert.Equal(t, SectionSelectedText, result.Sources[0].Section)
	assert.Equal(t, 0, embedder.calls)
	assert.Equal(t, 0, index.searchCalls)

	// Pinned mode shows up in both the framing and the user message.
	first := completion.lastHistory[0]
	assert.Contains(t, first.Content, "Context Mode")
	last := completion.lastHistory[len(completion.lastHistory)-1]
	assert.Contains(t, last.Content, "Selected Text: Gazebo simulates rigid body dynamics.")
}
