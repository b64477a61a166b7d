package models

import (
	"time"

	"github.com/google/uuid"
)

// SessionStatus defines the lifecycle state of a proposed session
type SessionStatus string

const (
	SessionProposed SessionStatus = "proposed"
	SessionAccepted SessionStatus = "accepted"
	SessionDeclined SessionStatus = "declined"
)

// SessionMode defines how a session is held
type SessionMode string

const (
	SessionOnline   SessionMode = "online"
	SessionInPerson SessionMode = "in_person"
)

// IsValid reports whether the mode is a known session mode
func (m SessionMode) IsValid() bool {
	return m == SessionOnline || m == SessionInPerson
}

// Session represents a scheduled or proposed meeting on a match
type Session struct {
	ID           uuid.UUID     `json:"id" db:"id"`
	MatchID      uuid.UUID     `json:"matchId" db:"match_id"`
	ProposedBy   uuid.UUID     `json:"proposedBy" db:"proposed_by"`
	ProposedTime time.Time     `json:"proposedTime" db:"proposed_time"`
	Location     *string       `json:"location,omitempty" db:"location"`
	Mode         SessionMode   `json:"mode" db:"mode"`
	Notes        *string       `json:"notes,omitempty" db:"notes"`
	Status       SessionStatus `json:"status" db:"status"`
	CreatedAt    time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time     `json:"updatedAt" db:"updated_at"`
}
