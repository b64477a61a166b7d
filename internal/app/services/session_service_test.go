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
	"github.com/emrekoch/skillbridge/internal/app/models/dto"
	"github.com/emrekoch/skillbridge/internal/events"
	"github.com/emrekoch/skillbridge/internal/pkg/apperrors"
)

type fakeSessionStore struct {
	sessions map[uuid.UUID]*models.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[uuid.UUID]*models.Session)}
}

func (f *fakeSessionStore) Create(_ context.Context, s *models.Session) error {
	s.ID = uuid.New()
	s.Status = models.SessionProposed
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	cp := *s
	f.sessions[s.ID] = &cp
	return nil
}

func (f *fakeSessionStore) GetByID(_ context.Context, id uuid.UUID) (*models.Session, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSessionStore) ListByMatch(_ context.Context, matchID uuid.UUID) ([]*models.Session, error) {
	var out []*models.Session
	for _, s := range f.sessions {
		if s.MatchID == matchID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeSessionStore) UpdateStatus(_ context.Context, id uuid.UUID, status models.SessionStatus) error {
	s, ok := f.sessions[id]
	if !ok {
		return apperrors.ErrResourceNotFound
	}
	s.Status = status
	s.UpdatedAt = time.Now()
	return nil
}

type fakeMessageStore struct {
	messages []*models.Message
}

func (f *fakeMessageStore) Create(_ context.Context, m *models.Message) error {
	m.ID = uuid.New()
	m.CreatedAt = time.Now()
	cp := *m
	f.messages = append(f.messages, &cp)
	return nil
}

func (f *fakeMessageStore) ListByMatch(_ context.Context, matchID uuid.UUID, limit int) ([]*models.Message, error) {
	var out []*models.Message
	for i := len(f.messages) - 1; i >= 0; i-- {
		if f.messages[i].MatchID != matchID {
			continue
		}
		cp := *f.messages[i]
		out = append(out, &cp)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakeMatchToucher struct {
	matches map[uuid.UUID]*models.Match
	touched []uuid.UUID
}

func newFakeMatchToucher(matches ...*models.Match) *fakeMatchToucher {
	f := &fakeMatchToucher{matches: make(map[uuid.UUID]*models.Match)}
	for _, m := range matches {
		f.matches[m.ID] = m
	}
	return f
}

func (f *fakeMatchToucher) GetByID(_ context.Context, id uuid.UUID) (*models.Match, error) {
	m, ok := f.matches[id]
	if !ok {
		return nil, apperrors.ErrMatchNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMatchToucher) TouchUpdatedAt(_ context.Context, id uuid.UUID, _ time.Time) error {
	f.touched = append(f.touched, id)
	return nil
}

func newTestSessionService(matches *fakeMatchToucher) (*SessionService, *fakeSessionStore, *fakeMessageStore) {
	sessions := newFakeSessionStore()
	messages := &fakeMessageStore{}
	svc := NewSessionService(sessions, messages, matches, events.NopPublisher{}, zerolog.Nop())
	return svc, sessions, messages
}

func acceptedMatch(learnerID, teacherID uuid.UUID) *models.Match {
	m := pendingMatch(learnerID, teacherID)
	m.Status = models.MatchAccepted
	return m
}

func TestProposeSession(t *testing.T) {
	learner, teacher := uuid.New(), uuid.New()
	match := acceptedMatch(learner, teacher)
	matches := newFakeMatchToucher(match)
	svc, _, _ := newTestSessionService(matches)

	location := "City Library"
	session, err := svc.ProposeSession(context.Background(), match.ID, teacher, dto.ProposeSessionRequest{
		ProposedTime: time.Now().Add(48 * time.Hour),
		Location:     &location,
		Mode:         models.SessionInPerson,
	})

	require.NoError(t, err)
	assert.Equal(t, models.SessionProposed, session.Status)
	assert.Equal(t, teacher, session.ProposedBy)
	assert.Contains(t, matches.touched, match.ID)
}

func TestProposeSessionRequiresAcceptedMatch(t *testing.T) {
	learner, teacher := uuid.New(), uuid.New()
	match := pendingMatch(learner, teacher)
	svc, _, _ := newTestSessionService(newFakeMatchToucher(match))

	_, err := svc.ProposeSession(context.Background(), match.ID, learner, dto.ProposeSessionRequest{
		ProposedTime: time.Now().Add(time.Hour),
		Mode:         models.SessionOnline,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestProposeSessionRejectsUnknownMode(t *testing.T) {
	learner, teacher := uuid.New(), uuid.New()
	match := acceptedMatch(learner, teacher)
	svc, _, _ := newTestSessionService(newFakeMatchToucher(match))

	_, err := svc.ProposeSession(context.Background(), match.ID, learner, dto.ProposeSessionRequest{
		ProposedTime: time.Now().Add(time.Hour),
		Mode:         models.SessionMode("telepathy"),
	})

	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestRespondToSession(t *testing.T) {
	learner, teacher := uuid.New(), uuid.New()
	match := acceptedMatch(learner, teacher)
	svc, _, _ := newTestSessionService(newFakeMatchToucher(match))

	session, err := svc.ProposeSession(context.Background(), match.ID, learner, dto.ProposeSessionRequest{
		ProposedTime: time.Now().Add(time.Hour),
		Mode:         models.SessionOnline,
	})
	require.NoError(t, err)

	updated, err := svc.RespondToSession(context.Background(), session.ID, teacher, models.SessionAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.SessionAccepted, updated.Status)
}

func TestProposerCannotRespondToOwnSession(t *testing.T) {
	learner, teacher := uuid.New(), uuid.New()
	match := acceptedMatch(learner, teacher)
	svc, _, _ := newTestSessionService(newFakeMatchToucher(match))

	session, err := svc.ProposeSession(context.Background(), match.ID, learner, dto.ProposeSessionRequest{
		ProposedTime: time.Now().Add(time.Hour),
		Mode:         models.SessionOnline,
	})
	require.NoError(t, err)

	_, err = svc.RespondToSession(context.Background(), session.ID, learner, models.SessionDeclined)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestRespondToSessionOnlyOnce(t *testing.T) {
	learner, teacher := uuid.New(), uuid.New()
	match := acceptedMatch(learner, teacher)
	svc, _, _ := newTestSessionService(newFakeMatchToucher(match))

	session, err := svc.ProposeSession(context.Background(), match.ID, learner, dto.ProposeSessionRequest{
		ProposedTime: time.Now().Add(time.Hour),
		Mode:         models.SessionOnline,
	})
	require.NoError(t, err)

	_, err = svc.RespondToSession(context.Background(), session.ID, teacher, models.SessionDeclined)
	require.NoError(t, err)

	_, err = svc.RespondToSession(context.Background(), session.ID, teacher, models.SessionAccepted)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestRespondToSessionRejectsProposedStatus(t *testing.T) {
	svc, _, _ := newTestSessionService(newFakeMatchToucher())

	_, err := svc.RespondToSession(context.Background(), uuid.New(), uuid.New(), models.SessionProposed)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestSendMessageTouchesMatch(t *testing.T) {
	learner, teacher := uuid.New(), uuid.New()
	match := acceptedMatch(learner, teacher)
	matches := newFakeMatchToucher(match)
	svc, _, store := newTestSessionService(matches)

	message, err := svc.SendMessage(context.Background(), match.ID, learner, "does thursday work?")
	require.NoError(t, err)
	assert.Equal(t, learner, message.SenderID)
	assert.Len(t, store.messages, 1)
	assert.Contains(t, matches.touched, match.ID)
}

func TestSendMessageRequiresParty(t *testing.T) {
	match := acceptedMatch(uuid.New(), uuid.New())
	svc, _, _ := newTestSessionService(newFakeMatchToucher(match))

	_, err := svc.SendMessage(context.Background(), match.ID, uuid.New(), "hello")
	assert.ErrorIs(t, err, apperrors.ErrNotMatchParty)
}

func TestListMessagesRequiresParty(t *testing.T) {
	match := acceptedMatch(uuid.New(), uuid.New())
	svc, _, _ := newTestSessionService(newFakeMatchToucher(match))

	_, err := svc.ListMessages(context.Background(), match.ID, uuid.New(), 50)
	assert.ErrorIs(t, err, apperrors.ErrNotMatchParty)
}
