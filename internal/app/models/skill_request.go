package models

import (
	"time"

	"github.com/google/uuid"
)

// RequestStatus defines the lifecycle state of a skill request
type RequestStatus string

const (
	RequestOpen   RequestStatus = "open"
	RequestClosed RequestStatus = "closed"
)

// SkillRequest represents a learner's open call for a teacher
type SkillRequest struct {
	ID             uuid.UUID     `json:"id" db:"id"`
	RequesterID    uuid.UUID     `json:"requesterId" db:"requester_id"`
	SkillID        uuid.UUID     `json:"skillId" db:"skill_id"`
	OfferedSkillID *uuid.UUID    `json:"offeredSkillId,omitempty" db:"offered_skill_id"`
	DesiredLevel   SkillLevel    `json:"desiredLevel" db:"desired_level"`
	LocationText   string        `json:"locationText" db:"location_text"`
	Latitude       *float64      `json:"latitude,omitempty" db:"latitude"`
	Longitude      *float64      `json:"longitude,omitempty" db:"longitude"`
	MaxDistanceKm  float64       `json:"maxDistanceKm" db:"max_distance_km"`
	IsRemote       bool          `json:"isRemote" db:"is_remote"`
	Status         RequestStatus `json:"status" db:"status"`
	CreatedAt      time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time     `json:"updatedAt" db:"updated_at"`

	// Related entities
	Skill *Skill `json:"skill,omitempty"`
}

// HasCoordinates reports whether the request carries a usable lat/lon pair
func (r *SkillRequest) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil
}
