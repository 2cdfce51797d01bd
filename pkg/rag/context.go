package rag

import (
	"context"
	"fmt"
	"strings"

	"ai-tutor-be/pkg/llm"

	"github.com/google/uuid"
)

// MaxHistoryTurns bounds how much of the persisted log is replayed to the
// model. The log itself is unbounded.
const MaxHistoryTurns = 7

const basePrompt = `You are an expert AI tutor for Physical AI and Humanoid Robotics (Chapter 1).

Your role:
- Answer questions about ROS 2, Gazebo, Unity, NVIDIA Isaac, and embodied intelligence
- Explain robotics concepts clearly and concisely
- Provide code examples when relevant
- Reference specific weeks/modules when appropriate
- Be encouraging and supportive`

const evidenceSeparator = "\n\n---\n\n"

// ContextBuilder assembles the bounded, multi-part message sequence fed to
// the completion provider.
type ContextBuilder struct {
	store TurnStore
}

func NewContextBuilder(store TurnStore) *ContextBuilder {
	return &ContextBuilder{store: store}
}

// Build produces the message sequence
// [system-framing, ...history(<=7), system-evidence?, user-query].
// The evidence message, when documents exist, always sits immediately before
// the final user message and is never interleaved with history.
func (b *ContextBuilder) Build(ctx context.Context, sessionId uuid.UUID, query string, pinnedText string, profile *Profile, documents []RetrievedDocument) ([]llm.Message, error) {
	history, err := b.store.RecentTurns(ctx, sessionId, MaxHistoryTurns)
	if err != nil {
		return nil, &PipelineError{Stage: StageContext, Err: fmt.Errorf("load conversation history: %w", err)}
	}
	// The store is trusted to honor the limit, but the bound is a contract of
	// this builder, so enforce it here as well: keep the most recent turns.
	if len(history) > MaxHistoryTurns {
		history = history[len(history)-MaxHistoryTurns:]
	}

	messages := make([]llm.Message, 0, len(history)+3)
	messages = append(messages, llm.Message{
		Role:    RoleSystem,
		Content: buildSystemPrompt(profile, pinnedText != ""),
	})

	for _, turn := range history {
		messages = append(messages, llm.Message{
			Role:    turn.Role,
			Content: turn.Content,
		})
	}

	if len(documents) > 0 {
		messages = append(messages, llm.Message{
			Role:    RoleSystem,
			Content: buildEvidenceMessage(documents),
		})
	}

	messages = append(messages, llm.Message{
		Role:    RoleUser,
		Content: buildUserMessage(query, pinnedText),
	})

	return messages, nil
}

// buildSystemPrompt conditions the framing on the student profile and on
// whether the student pinned a passage. Absence of either yields the
// unqualified base framing.
func buildSystemPrompt(profile *Profile, hasPinnedText bool) string {
	var sb strings.Builder
	sb.WriteString(basePrompt)

	if profile != nil && (profile.SoftwareBackground != "" || profile.HardwareBackground != "") {
		sb.WriteString("\n\nStudent Profile:")
		sb.WriteString("\n- Software Background: " + orUnknown(profile.SoftwareBackground))
		sb.WriteString("\n- Hardware Background: " + orUnknown(profile.HardwareBackground))
		sb.WriteString("\n- Adjust explanations based on their background level")
	}

	if hasPinnedText {
		sb.WriteString("\n\nContext Mode: The student has selected specific text from the chapter. Focus your answer on explaining or expanding the selected content.")
	}

	return sb.String()
}

func buildEvidenceMessage(documents []RetrievedDocument) string {
	parts := make([]string, len(documents))
	for i, doc := range documents {
		parts[i] = fmt.Sprintf("[%s] (Relevance: %.2f)\n%s", doc.Section, doc.Score, doc.Content)
	}
	return "Retrieved Context:\n\n" + strings.Join(parts, evidenceSeparator)
}

func buildUserMessage(query string, pinnedText string) string {
	if pinnedText != "" {
		return fmt.Sprintf("Selected Text: %s\n\nQuestion: %s", pinnedText, query)
	}
	return query
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
