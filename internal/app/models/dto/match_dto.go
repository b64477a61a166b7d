package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/emrekoch/skillbridge/internal/app/models"
)

// ProposeMatchRequest creates a direct learner-to-teacher match proposal.
// Fields are allow-listed; nothing else from the body is persisted.
type ProposeMatchRequest struct {
	TeacherID      uuid.UUID  `json:"teacherId" binding:"required"`
	SkillID        uuid.UUID  `json:"skillId" binding:"required"`
	OfferedSkillID *uuid.UUID `json:"offeredSkillId,omitempty"`
	Message        *string    `json:"message,omitempty" binding:"omitempty,max=500"`
}

// TransitionMatchRequest moves a match through its status lifecycle
type TransitionMatchRequest struct {
	Status models.MatchStatus `json:"status" binding:"required"`
}

// MatchResponse is a match row with its derived health classification
type MatchResponse struct {
	ID                 uuid.UUID           `json:"id"`
	RequestID          *uuid.UUID          `json:"requestId,omitempty"`
	LearnerID          uuid.UUID           `json:"learnerId"`
	TeacherID          uuid.UUID           `json:"teacherId"`
	SkillID            uuid.UUID           `json:"skillId"`
	OfferedSkillID     *uuid.UUID          `json:"offeredSkillId,omitempty"`
	Message            *string             `json:"message,omitempty"`
	Status             models.MatchStatus  `json:"status"`
	HealthStatus       models.HealthStatus `json:"healthStatus"`
	CompatibilityScore float64             `json:"compatibilityScore"`
	DistanceKm         *float64            `json:"distanceKm,omitempty"`
	CreatedAt          time.Time           `json:"createdAt"`
	AcceptedAt         *time.Time          `json:"acceptedAt,omitempty"`
	CompletedAt        *time.Time          `json:"completedAt,omitempty"`
	LastActivityAt     time.Time           `json:"lastActivityAt"`
	Teacher            *ProfileSummary     `json:"teacher,omitempty"`
	Learner            *ProfileSummary     `json:"learner,omitempty"`
	Skill              *SkillSummary       `json:"skill,omitempty"`
}

// NewMatchResponse maps a match model to its response shape, deriving health
// at the given time.
func NewMatchResponse(m *models.Match, now time.Time, thresholds models.HealthThresholds) MatchResponse {
	resp := MatchResponse{
		ID:                 m.ID,
		RequestID:          m.RequestID,
		LearnerID:          m.LearnerID,
		TeacherID:          m.TeacherID,
		SkillID:            m.SkillID,
		OfferedSkillID:     m.OfferedSkillID,
		Message:            m.Message,
		Status:             m.Status,
		HealthStatus:       m.Health(now, thresholds),
		CompatibilityScore: m.CompatibilityScore,
		DistanceKm:         m.DistanceKm,
		CreatedAt:          m.CreatedAt,
		AcceptedAt:         m.AcceptedAt,
		CompletedAt:        m.CompletedAt,
		LastActivityAt:     m.LastActivityAt,
	}

	if m.Teacher != nil {
		resp.Teacher = NewProfileSummary(m.Teacher)
	}
	if m.Learner != nil {
		resp.Learner = NewProfileSummary(m.Learner)
	}
	if m.Skill != nil {
		resp.Skill = &SkillSummary{ID: m.Skill.ID, Name: m.Skill.Name, Category: m.Skill.Category}
	}

	return resp
}

// FindMatchesResponse is the result of running discovery for a request
type FindMatchesResponse struct {
	Matches []MatchResponse `json:"matches"`
	Created int             `json:"created"`
	Ignored int             `json:"ignored"`
}

// ProfileSummary is the public subset of a profile embedded in responses
type ProfileSummary struct {
	ID           uuid.UUID `json:"id"`
	FullName     string    `json:"fullName"`
	Bio          string    `json:"bio,omitempty"`
	LocationText string    `json:"locationText,omitempty"`
	Rating       float64   `json:"rating"`
	TotalReviews int       `json:"totalReviews"`
	Verified     bool      `json:"verified"`
}

// NewProfileSummary maps a profile model to its embedded summary
func NewProfileSummary(p *models.Profile) *ProfileSummary {
	return &ProfileSummary{
		ID:           p.ID,
		FullName:     p.FullName,
		Bio:          p.Bio,
		LocationText: p.LocationText,
		Rating:       p.Rating,
		TotalReviews: p.TotalReviews,
		Verified:     p.Verified,
	}
}

// SkillSummary is the skill subset embedded in responses
type SkillSummary struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category,omitempty"`
}
