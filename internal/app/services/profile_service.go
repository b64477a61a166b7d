package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/emrekoch/skillbridge/internal/app/models"
	"github.com/emrekoch/skillbridge/internal/app/models/dto"
	"github.com/emrekoch/skillbridge/internal/pkg/apperrors"
)

// profileStore is the persistence surface the profile service needs
type profileStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	Upsert(ctx context.Context, p *models.Profile) error
	ListUserSkills(ctx context.Context, userID uuid.UUID) ([]*models.UserSkill, error)
	UpsertUserSkill(ctx context.Context, us *models.UserSkill) error
	DeleteUserSkill(ctx context.Context, userID, skillID uuid.UUID) error
}

// ProfileService manages self-service profile data and declared skills.
// Profiles are keyed by the identity provider's subject, so the first
// update a user makes doubles as onboarding.
type ProfileService struct {
	profiles profileStore
}

// NewProfileService creates a new ProfileService
func NewProfileService(profiles profileStore) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// GetProfile retrieves a profile with its declared skills
func (s *ProfileService) GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, []*models.UserSkill, error) {
	profile, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	skills, err := s.profiles.ListUserSkills(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return profile, skills, nil
}

// UpdateProfile creates or updates the caller's profile from the allow-listed
// fields. Server-managed fields (rating, verification, role) are untouched.
func (s *ProfileService) UpdateProfile(ctx context.Context, actorID uuid.UUID, in dto.UpdateProfileRequest) (*models.Profile, error) {
	if (in.Latitude == nil) != (in.Longitude == nil) {
		return nil, apperrors.NewValidationError("latitude and longitude must be provided together")
	}

	profile := &models.Profile{
		ID:               actorID,
		FullName:         in.FullName,
		Bio:              in.Bio,
		LocationText:     in.LocationText,
		Latitude:         in.Latitude,
		Longitude:        in.Longitude,
		OnlineSessions:   in.OnlineSessions,
		InPersonSessions: in.InPersonSessions,
	}
	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// DeclareSkill adds or updates a skill on the caller's profile. A skill
// declared with can_teach makes the caller discoverable for it.
func (s *ProfileService) DeclareSkill(ctx context.Context, actorID uuid.UUID, in dto.UpsertUserSkillRequest) (*models.UserSkill, error) {
	skillID, err := uuid.Parse(in.SkillID)
	if err != nil {
		return nil, apperrors.NewValidationError("skillId must be a valid UUID")
	}
	if !in.Level.IsValid() {
		return nil, apperrors.NewValidationError("unknown skill level: " + string(in.Level))
	}
	if !in.CanTeach && !in.WantsToLearn {
		return nil, apperrors.NewValidationError("a declared skill must be teachable or wanted")
	}

	us := &models.UserSkill{
		UserID:          actorID,
		SkillID:         skillID,
		Level:           in.Level,
		YearsExperience: in.YearsExperience,
		CanTeach:        in.CanTeach,
		WantsToLearn:    in.WantsToLearn,
		Description:     in.Description,
	}
	if err := s.profiles.UpsertUserSkill(ctx, us); err != nil {
		return nil, err
	}
	return us, nil
}

// RemoveSkill deletes a declared skill from the caller's profile
func (s *ProfileService) RemoveSkill(ctx context.Context, actorID, skillID uuid.UUID) error {
	return s.profiles.DeleteUserSkill(ctx, actorID, skillID)
}
