package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emrekoch/skillbridge/internal/app/models"
	"github.com/emrekoch/skillbridge/internal/events"
	"github.com/emrekoch/skillbridge/internal/pkg/apperrors"
)

// fakeMatchStore keeps matches in memory and mirrors the repository's
// error contract.
type fakeMatchStore struct {
	matches map[uuid.UUID]*models.Match
}

func newFakeMatchStore(seed ...*models.Match) *fakeMatchStore {
	s := &fakeMatchStore{matches: make(map[uuid.UUID]*models.Match)}
	for _, m := range seed {
		s.matches[m.ID] = m
	}
	return s
}

func (s *fakeMatchStore) ProposeDirect(_ context.Context, learnerID, teacherID, skillID uuid.UUID, offeredSkillID *uuid.UUID, _ *string) (*models.Match, error) {
	for _, m := range s.matches {
		if m.LearnerID == learnerID && m.TeacherID == teacherID && m.SkillID == skillID && !m.Status.IsTerminal() {
			return nil, apperrors.ErrDuplicateMatch
		}
	}
	m := &models.Match{
		ID:             uuid.New(),
		LearnerID:      learnerID,
		TeacherID:      teacherID,
		SkillID:        skillID,
		OfferedSkillID: offeredSkillID,
		Status:         models.MatchPending,
		CreatedAt:      time.Now(),
	}
	s.matches[m.ID] = m
	return m, nil
}

func (s *fakeMatchStore) GetByID(_ context.Context, id uuid.UUID) (*models.Match, error) {
	m, ok := s.matches[id]
	if !ok {
		return nil, apperrors.ErrMatchNotFound
	}
	return m, nil
}

func (s *fakeMatchStore) UpdateStatus(_ context.Context, id uuid.UUID, status models.MatchStatus) (*models.Match, error) {
	m, ok := s.matches[id]
	if !ok {
		return nil, apperrors.ErrMatchNotFound
	}
	m.Status = status
	now := time.Now()
	switch status {
	case models.MatchAccepted:
		m.AcceptedAt = &now
	case models.MatchCompleted:
		m.CompletedAt = &now
	}
	return m, nil
}

func (s *fakeMatchStore) ListForUser(_ context.Context, userID uuid.UUID, status *models.MatchStatus, _ int) ([]*models.Match, error) {
	var out []*models.Match
	for _, m := range s.matches {
		if !m.IsParty(userID) {
			continue
		}
		if status != nil && m.Status != *status {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func newTestMatchService(store matchStore) *MatchService {
	return NewMatchService(store, events.NopPublisher{}, models.DefaultHealthThresholds(), zerolog.Nop())
}

func pendingMatch(learnerID, teacherID uuid.UUID) *models.Match {
	return &models.Match{
		ID:        uuid.New(),
		LearnerID: learnerID,
		TeacherID: teacherID,
		SkillID:   uuid.New(),
		Status:    models.MatchPending,
		CreatedAt: time.Now(),
	}
}

func TestMatchService_ProposeDirect(t *testing.T) {
	learner := uuid.New()
	teacher := uuid.New()
	skill := uuid.New()
	svc := newTestMatchService(newFakeMatchStore())

	match, err := svc.ProposeDirect(context.Background(), learner, teacher, skill, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, models.MatchPending, match.Status)
	assert.Equal(t, learner, match.LearnerID)
	assert.Equal(t, teacher, match.TeacherID)
}

func TestMatchService_ProposeDirect_SelfMatch(t *testing.T) {
	user := uuid.New()
	svc := newTestMatchService(newFakeMatchStore())

	_, err := svc.ProposeDirect(context.Background(), user, user, uuid.New(), nil, nil)

	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestMatchService_ProposeDirect_DuplicateActivePair(t *testing.T) {
	learner := uuid.New()
	teacher := uuid.New()
	skill := uuid.New()
	svc := newTestMatchService(newFakeMatchStore())

	_, err := svc.ProposeDirect(context.Background(), learner, teacher, skill, nil, nil)
	require.NoError(t, err)

	_, err = svc.ProposeDirect(context.Background(), learner, teacher, skill, nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateMatch)
}

func TestMatchService_Transition_TeacherAccepts(t *testing.T) {
	learner := uuid.New()
	teacher := uuid.New()
	m := pendingMatch(learner, teacher)
	svc := newTestMatchService(newFakeMatchStore(m))

	updated, err := svc.Transition(context.Background(), m.ID, teacher, models.MatchAccepted)

	require.NoError(t, err)
	assert.Equal(t, models.MatchAccepted, updated.Status)
	assert.NotNil(t, updated.AcceptedAt)
}

func TestMatchService_Transition_LearnerCannotAccept(t *testing.T) {
	learner := uuid.New()
	teacher := uuid.New()
	m := pendingMatch(learner, teacher)
	svc := newTestMatchService(newFakeMatchStore(m))

	_, err := svc.Transition(context.Background(), m.ID, learner, models.MatchAccepted)

	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestMatchService_Transition_NonPartyRejected(t *testing.T) {
	m := pendingMatch(uuid.New(), uuid.New())
	svc := newTestMatchService(newFakeMatchStore(m))

	_, err := svc.Transition(context.Background(), m.ID, uuid.New(), models.MatchAccepted)

	assert.ErrorIs(t, err, apperrors.ErrNotMatchParty)
}

func TestMatchService_Transition_AcceptTwice(t *testing.T) {
	learner := uuid.New()
	teacher := uuid.New()
	m := pendingMatch(learner, teacher)
	svc := newTestMatchService(newFakeMatchStore(m))

	_, err := svc.Transition(context.Background(), m.ID, teacher, models.MatchAccepted)
	require.NoError(t, err)

	// The learner re-accepting an already accepted match is an illegal move
	_, err = svc.Transition(context.Background(), m.ID, learner, models.MatchAccepted)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestMatchService_Transition_EitherPartyCompletes(t *testing.T) {
	learner := uuid.New()
	teacher := uuid.New()
	m := pendingMatch(learner, teacher)
	m.Status = models.MatchAccepted
	svc := newTestMatchService(newFakeMatchStore(m))

	updated, err := svc.Transition(context.Background(), m.ID, learner, models.MatchCompleted)

	require.NoError(t, err)
	assert.Equal(t, models.MatchCompleted, updated.Status)
	assert.NotNil(t, updated.CompletedAt)
}

func TestMatchService_Transition_TerminalStates(t *testing.T) {
	for _, terminal := range []models.MatchStatus{models.MatchDeclined, models.MatchCompleted} {
		m := pendingMatch(uuid.New(), uuid.New())
		m.Status = terminal
		svc := newTestMatchService(newFakeMatchStore(m))

		for _, target := range []models.MatchStatus{models.MatchPending, models.MatchAccepted, models.MatchDeclined, models.MatchCompleted} {
			_, err := svc.Transition(context.Background(), m.ID, m.TeacherID, target)
			assert.ErrorIs(t, err, apperrors.ErrInvalidTransition, "%s -> %s must be rejected", terminal, target)
		}
	}
}

func TestMatchService_GetMatch_PartyOnly(t *testing.T) {
	m := pendingMatch(uuid.New(), uuid.New())
	svc := newTestMatchService(newFakeMatchStore(m))

	got, err := svc.GetMatch(context.Background(), m.ID, m.LearnerID)
	require.NoError(t, err)
	assert.Equal(t, m.ID, got.ID)

	_, err = svc.GetMatch(context.Background(), m.ID, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotMatchParty)
}
