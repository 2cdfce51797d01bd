package dto

import (
	"time"

	"github.com/google/uuid"
)

type ChatRequest struct {
	Message        string     `json:"message" validate:"required"`
	SessionId      *uuid.UUID `json:"session_id,omitempty"`
	SelectedText   string     `json:"selected_text,omitempty"`
	Action         string     `json:"action,omitempty" validate:"omitempty,oneof=personalize translate explain_code"`
	TargetLanguage string     `json:"target_language,omitempty"`
}

type SourceDTO struct {
	Content  string            `json:"content"`
	Score    float64           `json:"score"`
	Section  string            `json:"section"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type ChatResponse struct {
	Response   string      `json:"response"`
	SessionId  uuid.UUID   `json:"session_id"`
	Sources    []SourceDTO `json:"sources"`
	TokensUsed int         `json:"tokens_used"`
	// Degraded reports that the answer was produced without retrieved
	// evidence because the vector index was unreachable.
	Degraded bool `json:"evidence_degraded,omitempty"`
}

type ChatHistoryResponse struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type SessionSummaryResponse struct {
	SessionId    uuid.UUID `json:"session_id"`
	StartedAt    time.Time `json:"started_at"`
	LastActivity time.Time `json:"last_activity"`
	TurnCount    int64     `json:"turn_count"`
}
