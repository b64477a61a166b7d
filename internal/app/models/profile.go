package models

import (
	"time"

	"github.com/google/uuid"
)

// RoleType defines the user role type
type RoleType string

const (
	RoleUser  RoleType = "user"
	RoleAdmin RoleType = "admin"
)

// Profile represents a marketplace user profile
type Profile struct {
	ID               uuid.UUID `json:"id" db:"id"`
	FullName         string    `json:"fullName" db:"full_name"`
	Bio              string    `json:"bio" db:"bio"`
	Role             RoleType  `json:"role" db:"role"`
	LocationText     string    `json:"locationText" db:"location_text"`
	Latitude         *float64  `json:"latitude,omitempty" db:"latitude"`
	Longitude        *float64  `json:"longitude,omitempty" db:"longitude"`
	Rating           float64   `json:"rating" db:"rating"`
	TotalReviews     int       `json:"totalReviews" db:"total_reviews"`
	Verified         bool      `json:"verified" db:"verified"`
	OnlineSessions   bool      `json:"onlineSessions" db:"online_sessions"`
	InPersonSessions bool      `json:"inPersonSessions" db:"in_person_sessions"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" db:"updated_at"`

	// Related entities
	TeachableSkills []*UserSkill `json:"teachableSkills,omitempty"`
}

// HasCoordinates reports whether the profile carries a usable lat/lon pair
func (p *Profile) HasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// UserSkill links a profile to a skill it can teach or wants to learn
type UserSkill struct {
	UserID          uuid.UUID  `json:"userId" db:"user_id"`
	SkillID         uuid.UUID  `json:"skillId" db:"skill_id"`
	Level           SkillLevel `json:"level" db:"level"`
	YearsExperience int        `json:"yearsExperience" db:"years_experience"`
	CanTeach        bool       `json:"canTeach" db:"can_teach"`
	WantsToLearn    bool       `json:"wantsToLearn" db:"wants_to_learn"`
	Description     string     `json:"description,omitempty" db:"description"`

	// Related entities
	Skill *Skill `json:"skill,omitempty"`
}
