package dto

import (
	"github.com/emrekoch/skillbridge/internal/app/models"
)

// UpdateProfileRequest carries the self-service profile fields. Rating,
// review count, verification and role are never client-writable.
type UpdateProfileRequest struct {
	FullName         string   `json:"fullName" binding:"required,max=200"`
	Bio              string   `json:"bio" binding:"max=2000"`
	LocationText     string   `json:"locationText" binding:"max=200"`
	Latitude         *float64 `json:"latitude,omitempty" binding:"omitempty,gte=-90,lte=90"`
	Longitude        *float64 `json:"longitude,omitempty" binding:"omitempty,gte=-180,lte=180"`
	OnlineSessions   bool     `json:"onlineSessions"`
	InPersonSessions bool     `json:"inPersonSessions"`
}

// UpsertUserSkillRequest declares or updates a skill on the caller's profile
type UpsertUserSkillRequest struct {
	SkillID         string            `json:"skillId" binding:"required,uuid"`
	Level           models.SkillLevel `json:"level" binding:"required"`
	YearsExperience int               `json:"yearsExperience" binding:"gte=0,lte=80"`
	CanTeach        bool              `json:"canTeach"`
	WantsToLearn    bool              `json:"wantsToLearn"`
	Description     string            `json:"description" binding:"max=1000"`
}

// UserSkillResponse is a declared skill with its catalog entry
type UserSkillResponse struct {
	Skill           SkillSummary      `json:"skill"`
	Level           models.SkillLevel `json:"level"`
	YearsExperience int               `json:"yearsExperience"`
	CanTeach        bool              `json:"canTeach"`
	WantsToLearn    bool              `json:"wantsToLearn"`
	Description     string            `json:"description,omitempty"`
}

// ProfileResponse is the full public view of a profile with its skills
type ProfileResponse struct {
	Profile ProfileSummary      `json:"profile"`
	Skills  []UserSkillResponse `json:"skills"`
}

// NewUserSkillResponse maps a user skill row to its response shape
func NewUserSkillResponse(us *models.UserSkill) UserSkillResponse {
	resp := UserSkillResponse{
		Level:           us.Level,
		YearsExperience: us.YearsExperience,
		CanTeach:        us.CanTeach,
		WantsToLearn:    us.WantsToLearn,
		Description:     us.Description,
	}
	resp.Skill = SkillSummary{ID: us.SkillID}
	if us.Skill != nil {
		resp.Skill.Name = us.Skill.Name
		resp.Skill.Category = us.Skill.Category
	}
	return resp
}

// NewProfileResponse maps a profile and its declared skills
func NewProfileResponse(p *models.Profile, skills []*models.UserSkill) ProfileResponse {
	resp := ProfileResponse{
		Profile: *NewProfileSummary(p),
		Skills:  make([]UserSkillResponse, 0, len(skills)),
	}
	for _, us := range skills {
		resp.Skills = append(resp.Skills, NewUserSkillResponse(us))
	}
	return resp
}
