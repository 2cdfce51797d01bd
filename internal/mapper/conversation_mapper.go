package mapper

import (
	"ai-tutor-be/internal/entity"
	"ai-tutor-be/internal/model"

	"gorm.io/datatypes"
)

type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

func (m *ConversationMapper) ToModel(e *entity.ConversationTurn) *model.ConversationTurn {
	var metadata datatypes.JSONMap
	if len(e.Metadata) > 0 {
		metadata = make(datatypes.JSONMap, len(e.Metadata))
		for k, v := range e.Metadata {
			metadata[k] = v
		}
	}

	return &model.ConversationTurn{
		Id:        e.Id,
		UserId:    e.UserId,
		SessionId: e.SessionId,
		Role:      e.Role,
		Content:   e.Content,
		Metadata:  metadata,
		CreatedAt: e.CreatedAt,
	}
}

func (m *ConversationMapper) ToEntity(mo *model.ConversationTurn) *entity.ConversationTurn {
	var metadata map[string]string
	if len(mo.Metadata) > 0 {
		metadata = make(map[string]string, len(mo.Metadata))
		for k, v := range mo.Metadata {
			if s, ok := v.(string); ok {
				metadata[k] = s
			}
		}
	}

	return &entity.ConversationTurn{
		Id:        mo.Id,
		UserId:    mo.UserId,
		SessionId: mo.SessionId,
		Role:      mo.Role,
		Content:   mo.Content,
		Metadata:  metadata,
		CreatedAt: mo.CreatedAt,
	}
}
