package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/emrekoch/skillbridge/internal/app/models"
)

// RecordProgressRequest upserts a single day's check-in
type RecordProgressRequest struct {
	// Date in YYYY-MM-DD form; defaults to today when omitted.
	Date      string  `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Completed bool    `json:"completed"`
	Notes     *string `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// ProgressResponse is the stored progress row plus the recomputed
// participant stats.
type ProgressResponse struct {
	Progress    models.ChallengeProgress    `json:"progress"`
	Participant models.ChallengeParticipant `json:"participant"`
}

// ChallengeResponse is a challenge row with derived day counts
type ChallengeResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	TotalDays   int       `json:"totalDays"`
}

// NewChallengeResponse maps a challenge model to its response shape
func NewChallengeResponse(c *models.Challenge) ChallengeResponse {
	return ChallengeResponse{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		StartDate:   c.StartDate,
		EndDate:     c.EndDate,
		TotalDays:   c.TotalDays(),
	}
}

// LeaderboardResponse is the ranked participant list of a challenge
type LeaderboardResponse struct {
	Entries []models.LeaderboardEntry `json:"entries"`
}
