package models

import (
	"time"

	"github.com/google/uuid"
)

// Challenge represents a time-boxed learning challenge
type Challenge struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	StartDate   time.Time `json:"startDate" db:"start_date"`
	EndDate     time.Time `json:"endDate" db:"end_date"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// TotalDays returns the challenge length in whole days. Both endpoints are
// inside the window, so a challenge running Aug 1 to Aug 7 is 7 days.
func (c *Challenge) TotalDays() int {
	days := int(c.EndDate.Sub(c.StartDate).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	return days
}

// Contains reports whether the given day falls inside the challenge window
func (c *Challenge) Contains(day time.Time) bool {
	d := day.Truncate(24 * time.Hour)
	return !d.Before(c.StartDate.Truncate(24*time.Hour)) && !d.After(c.EndDate.Truncate(24*time.Hour))
}

// ChallengeParticipant tracks a user's standing inside a challenge
type ChallengeParticipant struct {
	ChallengeID    uuid.UUID  `json:"challengeId" db:"challenge_id"`
	UserID         uuid.UUID  `json:"userId" db:"user_id"`
	Status         string     `json:"status" db:"status"`
	CurrentStreak  int        `json:"currentStreak" db:"current_streak"`
	TotalPoints    int        `json:"totalPoints" db:"total_points"`
	LastActivityAt *time.Time `json:"lastActivityAt,omitempty" db:"last_activity_at"`
	JoinedAt       time.Time  `json:"joinedAt" db:"joined_at"`

	// Related entities
	User *Profile `json:"user,omitempty"`
}

// ChallengeProgress is a single day's check-in, unique per
// (challenge, user, date).
type ChallengeProgress struct {
	ID           uuid.UUID `json:"id" db:"id"`
	ChallengeID  uuid.UUID `json:"challengeId" db:"challenge_id"`
	UserID       uuid.UUID `json:"userId" db:"user_id"`
	ProgressDate time.Time `json:"progressDate" db:"progress_date"`
	Completed    bool      `json:"completed" db:"completed"`
	PointsEarned int       `json:"pointsEarned" db:"points_earned"`
	Notes        *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// LeaderboardEntry is a ranked participant with derived completion stats
type LeaderboardEntry struct {
	UserID               uuid.UUID `json:"userId"`
	FullName             string    `json:"fullName"`
	Rank                 int       `json:"rank"`
	TotalPoints          int       `json:"totalPoints"`
	CurrentStreak        int       `json:"currentStreak"`
	CompletionPercentage float64   `json:"completionPercentage"`
}
