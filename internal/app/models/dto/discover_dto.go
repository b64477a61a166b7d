package dto

import (
	"github.com/emrekoch/skillbridge/internal/app/models"
)

// DiscoverQuery carries the candidate-search filters parsed from the
// /discover query string.
type DiscoverQuery struct {
	Query        string   `form:"q"`
	Latitude     *float64 `form:"lat" binding:"omitempty,gte=-90,lte=90"`
	Longitude    *float64 `form:"lon" binding:"omitempty,gte=-180,lte=180"`
	RadiusKm     float64  `form:"radius" binding:"omitempty,gt=0,lte=500"`
	Category     string   `form:"category"`
	OnlineOnly   bool     `form:"online"`
	InPersonOnly bool     `form:"inPerson"`
	VerifiedOnly bool     `form:"verified"`
	MinRating    float64  `form:"minRating" binding:"omitempty,gte=0,lte=5"`
}

// HasCoordinates reports whether the query carries a usable lat/lon pair
func (q *DiscoverQuery) HasCoordinates() bool {
	return q.Latitude != nil && q.Longitude != nil
}

// CandidateResponse is a ranked teacher candidate
type CandidateResponse struct {
	Profile            ProfileSummary `json:"profile"`
	TeachableSkills    []SkillSummary `json:"teachableSkills,omitempty"`
	DistanceKm         *float64       `json:"distanceKm,omitempty"`
	CompatibilityScore float64        `json:"compatibilityScore"`
}

// DiscoverResponse is a ranked, bounded candidate page
type DiscoverResponse struct {
	Candidates []CandidateResponse `json:"candidates"`
}

// RankedCandidate is the internal scored candidate used by the discovery
// service before mapping to the response shape.
type RankedCandidate struct {
	Profile            *models.Profile
	TeacherSkill       *models.UserSkill
	DistanceKm         *float64
	CompatibilityScore float64
}

// NewCandidateResponse maps a ranked candidate to its response shape
func NewCandidateResponse(c RankedCandidate) CandidateResponse {
	resp := CandidateResponse{
		Profile:            *NewProfileSummary(c.Profile),
		DistanceKm:         c.DistanceKm,
		CompatibilityScore: c.CompatibilityScore,
	}
	for _, us := range c.Profile.TeachableSkills {
		if us.Skill != nil {
			resp.TeachableSkills = append(resp.TeachableSkills, SkillSummary{
				ID:       us.Skill.ID,
				Name:     us.Skill.Name,
				Category: us.Skill.Category,
			})
		}
	}
	return resp
}
