package dto

import (
	"time"

	"github.com/emrekoch/skillbridge/internal/app/models"
)

// ProposeSessionRequest proposes a session on an accepted match
type ProposeSessionRequest struct {
	ProposedTime time.Time          `json:"proposedTime" binding:"required"`
	Location     *string            `json:"location,omitempty" binding:"omitempty,max=200"`
	Mode         models.SessionMode `json:"mode" binding:"required"`
	Notes        *string            `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// RespondSessionRequest accepts or declines a proposed session
type RespondSessionRequest struct {
	Status models.SessionStatus `json:"status" binding:"required"`
}

// SendMessageRequest posts a message to a match conversation
type SendMessageRequest struct {
	Content string `json:"content" binding:"required,max=4000"`
}

// CreateReportRequest flags another user for moderation
type CreateReportRequest struct {
	ReportedUserID string  `json:"reportedUserId" binding:"required,uuid"`
	Reason         string  `json:"reason" binding:"required,max=200"`
	Details        *string `json:"details,omitempty" binding:"omitempty,max=2000"`
}
