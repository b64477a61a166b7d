package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/emrekoch/skillbridge/internal/app/models"
)

// CreateSkillRequestRequest opens a new learning request. The field set is the
// complete allow-list; unknown body fields are never persisted.
type CreateSkillRequestRequest struct {
	SkillID        uuid.UUID         `json:"skillId" binding:"required"`
	OfferedSkillID *uuid.UUID        `json:"offeredSkillId,omitempty"`
	DesiredLevel   models.SkillLevel `json:"desiredLevel" binding:"required"`
	LocationText   string            `json:"locationText" binding:"omitempty,max=200"`
	Latitude       *float64          `json:"latitude,omitempty" binding:"omitempty,gte=-90,lte=90"`
	Longitude      *float64          `json:"longitude,omitempty" binding:"omitempty,gte=-180,lte=180"`
	MaxDistanceKm  float64           `json:"maxDistanceKm" binding:"omitempty,gt=0,lte=500"`
	IsRemote       bool              `json:"isRemote"`
}

// SkillRequestResponse is a skill request row
type SkillRequestResponse struct {
	ID             uuid.UUID            `json:"id"`
	RequesterID    uuid.UUID            `json:"requesterId"`
	SkillID        uuid.UUID            `json:"skillId"`
	OfferedSkillID *uuid.UUID           `json:"offeredSkillId,omitempty"`
	DesiredLevel   models.SkillLevel    `json:"desiredLevel"`
	LocationText   string               `json:"locationText,omitempty"`
	Latitude       *float64             `json:"latitude,omitempty"`
	Longitude      *float64             `json:"longitude,omitempty"`
	MaxDistanceKm  float64              `json:"maxDistanceKm"`
	IsRemote       bool                 `json:"isRemote"`
	Status         models.RequestStatus `json:"status"`
	CreatedAt      time.Time            `json:"createdAt"`
	Skill          *SkillSummary        `json:"skill,omitempty"`
}

// NewSkillRequestResponse maps a skill request model to its response shape
func NewSkillRequestResponse(r *models.SkillRequest) SkillRequestResponse {
	resp := SkillRequestResponse{
		ID:             r.ID,
		RequesterID:    r.RequesterID,
		SkillID:        r.SkillID,
		OfferedSkillID: r.OfferedSkillID,
		DesiredLevel:   r.DesiredLevel,
		LocationText:   r.LocationText,
		Latitude:       r.Latitude,
		Longitude:      r.Longitude,
		MaxDistanceKm:  r.MaxDistanceKm,
		IsRemote:       r.IsRemote,
		Status:         r.Status,
		CreatedAt:      r.CreatedAt,
	}
	if r.Skill != nil {
		resp.Skill = &SkillSummary{ID: r.Skill.ID, Name: r.Skill.Name, Category: r.Skill.Category}
	}
	return resp
}
