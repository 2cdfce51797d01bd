package entity

import (
	"time"

	"github.com/google/uuid"
)

// ConversationTurn is one message in a tutoring session. Turns are written
// once and never mutated; ordering is by creation time ascending.
type ConversationTurn struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	SessionId uuid.UUID
	Role      string
	Content   string
	Metadata  map[string]string
	CreatedAt time.Time
}
