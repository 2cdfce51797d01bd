package service

import (
	"context"
	"time"

	"ai-tutor-be/internal/entity"
	"ai-tutor-be/internal/repository/contract"
	"ai-tutor-be/pkg/rag"

	"github.com/google/uuid"
)

// conversationTurnStore adapts the conversation repository to the pipeline's
// TurnStore contract.
type conversationTurnStore struct {
	repo contract.ConversationRepository
}

func NewConversationTurnStore(repo contract.ConversationRepository) rag.TurnStore {
	return &conversationTurnStore{repo: repo}
}

func (s *conversationTurnStore) AppendTurn(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, role, content string, metadata map[string]string) error {
	return s.repo.Create(ctx, &entity.ConversationTurn{
		Id:        uuid.New(),
		UserId:    userId,
		SessionId: sessionId,
		Role:      role,
		Content:   content,
		Metadata:  metadata,
		CreatedAt: time.Now(),
	})
}

func (s *conversationTurnStore) RecentTurns(ctx context.Context, sessionId uuid.UUID, limit int) ([]rag.Turn, error) {
	entities, err := s.repo.RecentBySession(ctx, sessionId, limit)
	if err != nil {
		return nil, err
	}

	turns := make([]rag.Turn, len(entities))
	for i, e := range entities {
		turns[i] = rag.Turn{
			Role:      e.Role,
			Content:   e.Content,
			Metadata:  e.Metadata,
			CreatedAt: e.CreatedAt,
		}
	}
	return turns, nil
}
