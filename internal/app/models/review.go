package models

import (
	"time"

	"github.com/google/uuid"
)

// MaxReviewEdits caps how many times a reviewer may amend a review before it
// becomes immutable.
const MaxReviewEdits = 3

// Review represents a post-completion rating of a match party
type Review struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	MatchID    uuid.UUID  `json:"matchId" db:"match_id"`
	ReviewerID uuid.UUID  `json:"reviewerId" db:"reviewer_id"`
	RevieweeID uuid.UUID  `json:"revieweeId" db:"reviewee_id"`
	SkillID    *uuid.UUID `json:"skillId,omitempty" db:"skill_id"`
	Rating     int        `json:"rating" db:"rating"`
	Comment    *string    `json:"comment,omitempty" db:"comment"`
	EditCount  int        `json:"editCount" db:"edit_count"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time  `json:"updatedAt" db:"updated_at"`
}

// CanEdit reports whether the review is still mutable for its owner
func (r *Review) CanEdit() bool {
	return r.EditCount < MaxReviewEdits
}
