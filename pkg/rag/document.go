package rag

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Message roles shared across the pipeline and the conversation store.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// SectionSelectedText marks a synthetic document built from text the student
// pinned, as opposed to a passage retrieved from the index.
const SectionSelectedText = "Selected Text"

// RetrievedDocument is one piece of evidence fed to the completion provider.
// Score is cosine similarity in [0,1], higher is better; a pinned-text
// document always carries 1.0.
type RetrievedDocument struct {
	Content  string            `json:"content"`
	Score    float64           `json:"score"`
	Section  string            `json:"section"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Profile carries the student's self-reported experience levels. Both fields
// are free-form labels and either may be empty.
type Profile struct {
	SoftwareBackground string
	HardwareBackground string
}

// Turn is one persisted conversation message, immutable once written.
type Turn struct {
	Role      string
	Content   string
	Metadata  map[string]string
	CreatedAt time.Time
}

// TurnStore is the conversation store contract the pipeline needs: an
// append-only ordered log of turns per session. Sessions are created
// implicitly on first write.
type TurnStore interface {
	AppendTurn(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, role, content string, metadata map[string]string) error
	// RecentTurns returns at most limit turns, oldest first.
	RecentTurns(ctx context.Context, sessionId uuid.UUID, limit int) ([]Turn, error)
}
