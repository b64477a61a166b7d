package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emrekoch/skillbridge/internal/app/models"
	"github.com/emrekoch/skillbridge/internal/app/models/dto"
	"github.com/emrekoch/skillbridge/internal/pkg/apperrors"
)

// fakeProfileStore mirrors the repository's upsert contract: profiles keyed
// by id, skills keyed by (user, skill), unknown catalog skills rejected.
type fakeProfileStore struct {
	profiles      map[uuid.UUID]*models.Profile
	skills        map[string]*models.UserSkill
	knownSkillIDs map[uuid.UUID]bool
}

func newFakeProfileStore(knownSkills ...uuid.UUID) *fakeProfileStore {
	f := &fakeProfileStore{
		profiles:      make(map[uuid.UUID]*models.Profile),
		skills:        make(map[string]*models.UserSkill),
		knownSkillIDs: make(map[uuid.UUID]bool),
	}
	for _, id := range knownSkills {
		f.knownSkillIDs[id] = true
	}
	return f
}

func (f *fakeProfileStore) skillKey(userID, skillID uuid.UUID) string {
	return userID.String() + "/" + skillID.String()
}

func (f *fakeProfileStore) GetByID(_ context.Context, id uuid.UUID) (*models.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, apperrors.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfileStore) Upsert(_ context.Context, p *models.Profile) error {
	if existing, ok := f.profiles[p.ID]; ok {
		p.Role = existing.Role
		p.Rating = existing.Rating
		p.TotalReviews = existing.TotalReviews
		p.Verified = existing.Verified
	} else {
		p.Role = models.RoleUser
	}
	cp := *p
	f.profiles[p.ID] = &cp
	return nil
}

func (f *fakeProfileStore) ListUserSkills(_ context.Context, userID uuid.UUID) ([]*models.UserSkill, error) {
	var out []*models.UserSkill
	for _, us := range f.skills {
		if us.UserID == userID {
			cp := *us
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeProfileStore) UpsertUserSkill(_ context.Context, us *models.UserSkill) error {
	if !f.knownSkillIDs[us.SkillID] {
		return apperrors.ErrSkillNotFound
	}
	cp := *us
	f.skills[f.skillKey(us.UserID, us.SkillID)] = &cp
	return nil
}

func (f *fakeProfileStore) DeleteUserSkill(_ context.Context, userID, skillID uuid.UUID) error {
	key := f.skillKey(userID, skillID)
	if _, ok := f.skills[key]; !ok {
		return apperrors.ErrSkillNotFound
	}
	delete(f.skills, key)
	return nil
}

func TestProfileService_UpdateProfile_CreatesOnFirstWrite(t *testing.T) {
	store := newFakeProfileStore()
	svc := NewProfileService(store)
	userID := uuid.New()

	lat, lon := 41.0, 29.0
	profile, err := svc.UpdateProfile(context.Background(), userID, dto.UpdateProfileRequest{
		FullName:         "Ayse Demir",
		Bio:              "Guitarist, 10 years",
		LocationText:     "Istanbul",
		Latitude:         &lat,
		Longitude:        &lon,
		OnlineSessions:   true,
		InPersonSessions: true,
	})

	require.NoError(t, err)
	assert.Equal(t, userID, profile.ID)
	assert.Equal(t, models.RoleUser, profile.Role)

	stored, _, err := svc.GetProfile(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "Ayse Demir", stored.FullName)
}

func TestProfileService_UpdateProfile_KeepsServerManagedFields(t *testing.T) {
	store := newFakeProfileStore()
	svc := NewProfileService(store)
	userID := uuid.New()

	_, err := svc.UpdateProfile(context.Background(), userID, dto.UpdateProfileRequest{FullName: "Ayse"})
	require.NoError(t, err)

	// Moderation and reviews flip these outside the self-service path.
	store.profiles[userID].Verified = true
	store.profiles[userID].Rating = 4.5

	updated, err := svc.UpdateProfile(context.Background(), userID, dto.UpdateProfileRequest{FullName: "Ayse Demir"})
	require.NoError(t, err)
	assert.True(t, updated.Verified)
	assert.Equal(t, 4.5, updated.Rating)
}

func TestProfileService_UpdateProfile_RejectsHalfCoordinates(t *testing.T) {
	svc := NewProfileService(newFakeProfileStore())
	lat := 41.0

	_, err := svc.UpdateProfile(context.Background(), uuid.New(), dto.UpdateProfileRequest{
		FullName: "Ayse",
		Latitude: &lat,
	})

	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestProfileService_DeclareSkill(t *testing.T) {
	guitar := uuid.New()
	store := newFakeProfileStore(guitar)
	svc := NewProfileService(store)
	userID := uuid.New()

	skill, err := svc.DeclareSkill(context.Background(), userID, dto.UpsertUserSkillRequest{
		SkillID:         guitar.String(),
		Level:           models.LevelAdvanced,
		YearsExperience: 10,
		CanTeach:        true,
	})

	require.NoError(t, err)
	assert.Equal(t, guitar, skill.SkillID)
	assert.True(t, skill.CanTeach)

	_, skills, err := svc.GetProfile(context.Background(), userID)
	assert.ErrorIs(t, err, apperrors.ErrProfileNotFound)
	assert.Nil(t, skills)
}

func TestProfileService_DeclareSkill_Validation(t *testing.T) {
	guitar := uuid.New()
	svc := NewProfileService(newFakeProfileStore(guitar))
	userID := uuid.New()

	_, err := svc.DeclareSkill(context.Background(), userID, dto.UpsertUserSkillRequest{
		SkillID:  guitar.String(),
		Level:    models.SkillLevel("grandmaster"),
		CanTeach: true,
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.DeclareSkill(context.Background(), userID, dto.UpsertUserSkillRequest{
		SkillID: guitar.String(),
		Level:   models.LevelBeginner,
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed, "neither teachable nor wanted")

	_, err = svc.DeclareSkill(context.Background(), userID, dto.UpsertUserSkillRequest{
		SkillID:  uuid.New().String(),
		Level:    models.LevelBeginner,
		CanTeach: true,
	})
	assert.ErrorIs(t, err, apperrors.ErrSkillNotFound, "unknown catalog skill")
}

func TestProfileService_DeclareSkill_UpdatesExistingDeclaration(t *testing.T) {
	guitar := uuid.New()
	store := newFakeProfileStore(guitar)
	svc := NewProfileService(store)
	userID := uuid.New()

	_, err := svc.DeclareSkill(context.Background(), userID, dto.UpsertUserSkillRequest{
		SkillID: guitar.String(), Level: models.LevelIntermediate, CanTeach: true,
	})
	require.NoError(t, err)

	updated, err := svc.DeclareSkill(context.Background(), userID, dto.UpsertUserSkillRequest{
		SkillID: guitar.String(), Level: models.LevelExpert, CanTeach: true,
	})
	require.NoError(t, err)
	assert.Equal(t, models.LevelExpert, updated.Level)
	assert.Len(t, store.skills, 1)
}

func TestProfileService_RemoveSkill(t *testing.T) {
	guitar := uuid.New()
	store := newFakeProfileStore(guitar)
	svc := NewProfileService(store)
	userID := uuid.New()

	_, err := svc.DeclareSkill(context.Background(), userID, dto.UpsertUserSkillRequest{
		SkillID: guitar.String(), Level: models.LevelAdvanced, CanTeach: true,
	})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveSkill(context.Background(), userID, guitar))
	assert.ErrorIs(t, svc.RemoveSkill(context.Background(), userID, guitar), apperrors.ErrSkillNotFound)
}
