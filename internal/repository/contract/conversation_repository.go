package contract

import (
	"context"
	"time"

	"ai-tutor-be/internal/entity"
	"ai-tutor-be/internal/repository/specification"

	"github.com/google/uuid"
)

// SessionSummary aggregates one tutoring session for listing. Sessions have
// no table of their own; they exist implicitly through their turns.
type SessionSummary struct {
	SessionId    uuid.UUID
	StartedAt    time.Time
	LastActivity time.Time
	TurnCount    int64
}

type ConversationRepository interface {
	Create(ctx context.Context, turn *entity.ConversationTurn) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationTurn, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// RecentBySession returns at most limit turns for a session, oldest first.
	RecentBySession(ctx context.Context, sessionId uuid.UUID, limit int) ([]*entity.ConversationTurn, error)
	SessionsByUser(ctx context.Context, userId uuid.UUID) ([]*SessionSummary, error)
}
