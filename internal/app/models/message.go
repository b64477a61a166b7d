package models

import (
	"time"

	"github.com/google/uuid"
)

// Message represents a chat message exchanged on a match
type Message struct {
	ID        uuid.UUID `json:"id" db:"id"`
	MatchID   uuid.UUID `json:"matchId" db:"match_id"`
	SenderID  uuid.UUID `json:"senderId" db:"sender_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Related entities
	Sender *Profile `json:"sender,omitempty"`
}
