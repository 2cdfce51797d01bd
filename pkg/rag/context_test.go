package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessageLayout(t *testing.T) {
	store := &fakeTurnStore{turns: makeTurns(4)}
	builder := NewContextBuilder(store)

	documents := []RetrievedDocument{
		{Content: "passage one", Score: 0.91, Section: "ROS 2 Fundamentals"},
		{Content: "passage two", Score: 0.73, Section: "Digital Twins"},
	}

	messages, err := builder.Build(context.Background(), uuid.New(), "what is a topic?", "", nil, documents)
	require.NoError(t, err)

	// [system-framing, 4 history turns, system-evidence, user-query]
	require.Len(t, messages, 7)
	assert.Equal(t, RoleSystem, messages[0].Role)
	assert.Contains(t, messages[0].Content, "expert AI tutor")

	for i := 1; i <= 4; i++ {
		assert.Equal(t, store.turns[i-1].Role, messages[i].Role)
		assert.Equal(t, store.turns[i-1].Content, messages[i].Content)
	}

	evidence := messages[5]
	assert.Equal(t, RoleSystem, evidence.Role)
	assert.True(t, strings.HasPrefix(evidence.Content, "Retrieved Context:\n\n"))
	assert.Contains(t, evidence.Content, "[ROS 2 Fundamentals] (Relevance: 0.91)\npassage one")
	assert.Contains(t, evidence.Content, "[Digital Twins] (Relevance: 0.73)\npassage two")
	assert.Contains(t, evidence.Content, "\n\n---\n\n")

	last := messages[6]
	assert.Equal(t, RoleUser, last.Role)
	assert.Equal(t, "what is a topic?", last.Content)
}

func TestBuildOmitsEvidenceWithoutDocuments(t *testing.T) {
	builder := NewContextBuilder(&fakeTurnStore{})

	messages, err := builder.Build(context.Background(), uuid.New(), "hello", "", nil, nil)
	require.NoError(t, err)

	require.Len(t, messages, 2)
	assert.Equal(t, RoleSystem, messages[0].Role)
	assert.Equal(t, RoleUser, messages[1].Role)
	for _, msg := range messages {
		assert.NotContains(t, msg.Content, "Retrieved Context")
	}
}

func TestBuildBoundsHistory(t *testing.T) {
	// Session with far more turns than the replay window.
	store := &fakeTurnStore{turns: makeTurns(20)}
	builder := NewContextBuilder(store)

	messages, err := builder.Build(context.Background(), uuid.New(), "next question", "", nil, nil)
	require.NoError(t, err)

	// system + 7 most recent turns + user
	require.Len(t, messages, 9)
	historyMessages := messages[1:8]
	for i, msg := range historyMessages {
		assert.Equal(t, store.turns[13+i].Content, msg.Content)
	}
}

func TestBuildSystemPromptProfileConditioning(t *testing.T) {
	tests := []struct {
		name         string
		profile      *Profile
		wantProfile  bool
		wantSoftware string
		wantHardware string
	}{
		{
			name:    "nil profile stays unqualified",
			profile: nil,
		},
		{
			name:    "empty profile stays unqualified",
			profile: &Profile{},
		},
		{
			name:         "full profile is included",
			profile:      &Profile{SoftwareBackground: "advanced", HardwareBackground: "beginner"},
			wantProfile:  true,
			wantSoftware: "advanced",
			wantHardware: "beginner",
		},
		{
			name:         "partial profile fills unknown",
			profile:      &Profile{SoftwareBackground: "intermediate"},
			wantProfile:  true,
			wantSoftware: "intermediate",
			wantHardware: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt := buildSystemPrompt(tt.profile, false)
			assert.Contains(t, prompt, "expert AI tutor")

			if !tt.wantProfile {
				assert.NotContains(t, prompt, "Student Profile")
				return
			}
			assert.Contains(t, prompt, "Student Profile:")
			assert.Contains(t, prompt, "- Software Background: "+tt.wantSoftware)
			assert.Contains(t, prompt, "- Hardware Background: "+tt.wantHardware)
			assert.Contains(t, prompt, "Adjust explanations based on their background level")
		})
	}
}

func TestBuildSystemPromptPinnedMode(t *testing.T) {
	without := buildSystemPrompt(nil, false)
	assert.NotContains(t, without, "Context Mode")

	with := buildSystemPrompt(nil, true)
	assert.Contains(t, with, "Context Mode: The student has selected specific text")
}

func TestBuildUserMessageWithPinnedText(t *testing.T) {
	store := &fakeTurnStore{}
	builder := NewContextBuilder(store)

	messages, err := builder.Build(context.Background(), uuid.New(), "what does this mean?", "Nodes are independent processes.", nil, nil)
	require.NoError(t, err)

	last := messages[len(messages)-1]
	assert.Equal(t, RoleUser, last.Role)
	assert.Equal(t, fmt.Sprintf("Selected Text: %s\n\nQuestion: %s", "Nodes are independent processes.", "what does this mean?"), last.Content)
}

func TestBuildHistoryFailureIsContextStage(t *testing.T) {
	store := &fakeTurnStore{recentErr: errors.New("db gone")}
	builder := NewContextBuilder(store)

	_, err := builder.Build(context.Background(), uuid.New(), "query", "", nil, nil)
	require.Error(t, err)

	var pipelineErr *PipelineError
	require.ErrorAs(t, err, &pipelineErr)
	assert.Equal(t, StageContext, pipelineErr.Stage)
}
