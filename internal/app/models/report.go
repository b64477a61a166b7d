package models

import (
	"time"

	"github.com/google/uuid"
)

// ReportStatus defines the moderation state of a report
type ReportStatus string

const (
	ReportOpen     ReportStatus = "open"
	ReportResolved ReportStatus = "resolved"
)

// Report represents a user flagging another user
type Report struct {
	ID             uuid.UUID    `json:"id" db:"id"`
	ReporterID     uuid.UUID    `json:"reporterId" db:"reporter_id"`
	ReportedUserID uuid.UUID    `json:"reportedUserId" db:"reported_user_id"`
	Reason         string       `json:"reason" db:"reason"`
	Details        *string      `json:"details,omitempty" db:"details"`
	Status         ReportStatus `json:"status" db:"status"`
	CreatedAt      time.Time    `json:"createdAt" db:"created_at"`

	// Related entities
	Reporter     *Profile `json:"reporter,omitempty"`
	ReportedUser *Profile `json:"reportedUser,omitempty"`
}
