package services

import (
	"context"
	"sort"
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

// fakeChallengeStore keeps challenges, participants and progress in memory
// with the same conflict semantics as the real tables.
type fakeChallengeStore struct {
	challenges   map[uuid.UUID]*models.Challenge
	participants map[string]*models.ChallengeParticipant
	progress     map[string]*models.ChallengeProgress
}

func newFakeChallengeStore(challenges ...*models.Challenge) *fakeChallengeStore {
	s := &fakeChallengeStore{
		challenges:   make(map[uuid.UUID]*models.Challenge),
		participants: make(map[string]*models.ChallengeParticipant),
		progress:     make(map[string]*models.ChallengeProgress),
	}
	for _, c := range challenges {
		s.challenges[c.ID] = c
	}
	return s
}

func pairKey(challengeID, userID uuid.UUID) string {
	return challengeID.String() + "/" + userID.String()
}

func dayKey(challengeID, userID uuid.UUID, day time.Time) string {
	return pairKey(challengeID, userID) + "/" + day.Format("2006-01-02")
}

func (s *fakeChallengeStore) GetByID(_ context.Context, id uuid.UUID) (*models.Challenge, error) {
	c, ok := s.challenges[id]
	if !ok {
		return nil, apperrors.ErrChallengeNotFound
	}
	return c, nil
}

func (s *fakeChallengeStore) List(_ context.Context) ([]*models.Challenge, error) {
	var out []*models.Challenge
	for _, c := range s.challenges {
		out = append(out, c)
	}
	return out, nil
}

func (s *fakeChallengeStore) Join(_ context.Context, challengeID, userID uuid.UUID) error {
	key := pairKey(challengeID, userID)
	if _, ok := s.participants[key]; ok {
		return nil
	}
	s.participants[key] = &models.ChallengeParticipant{
		ChallengeID: challengeID,
		UserID:      userID,
		Status:      "joined",
		JoinedAt:    time.Now(),
	}
	return nil
}

func (s *fakeChallengeStore) GetParticipant(_ context.Context, challengeID, userID uuid.UUID) (*models.ChallengeParticipant, error) {
	p, ok := s.participants[pairKey(challengeID, userID)]
	if !ok {
		return nil, apperrors.ErrNotChallengeMember
	}
	return p, nil
}

func (s *fakeChallengeStore) UpsertProgress(_ context.Context, p *models.ChallengeProgress) error {
	key := dayKey(p.ChallengeID, p.UserID, p.ProgressDate)
	if existing, ok := s.progress[key]; ok {
		existing.Completed = p.Completed
		existing.PointsEarned = p.PointsEarned
		existing.Notes = p.Notes
		p.ID = existing.ID
		return nil
	}
	p.ID = uuid.New()
	stored := *p
	s.progress[key] = &stored
	return nil
}

func (s *fakeChallengeStore) ListProgress(_ context.Context, challengeID, userID uuid.UUID) ([]*models.ChallengeProgress, error) {
	var out []*models.ChallengeProgress
	for _, p := range s.progress {
		if p.ChallengeID == challengeID && p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProgressDate.After(out[j].ProgressDate) })
	return out, nil
}

func (s *fakeChallengeStore) UpdateParticipantStats(_ context.Context, challengeID, userID uuid.UUID, streak, totalPoints int, lastActivity time.Time) error {
	p, ok := s.participants[pairKey(challengeID, userID)]
	if !ok {
		return apperrors.ErrNotChallengeMember
	}
	p.CurrentStreak = streak
	p.TotalPoints = totalPoints
	p.LastActivityAt = &lastActivity
	return nil
}

func (s *fakeChallengeStore) ListParticipants(_ context.Context, challengeID uuid.UUID) ([]*models.ChallengeParticipant, map[uuid.UUID]int, error) {
	var out []*models.ChallengeParticipant
	days := make(map[uuid.UUID]int)
	for _, p := range s.participants {
		if p.ChallengeID != challengeID {
			continue
		}
		out = append(out, p)
	}
	for _, pr := range s.progress {
		if pr.ChallengeID == challengeID && pr.Completed {
			days[pr.UserID]++
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.TotalPoints != b.TotalPoints {
			return a.TotalPoints > b.TotalPoints
		}
		if a.CurrentStreak != b.CurrentStreak {
			return a.CurrentStreak > b.CurrentStreak
		}
		return a.JoinedAt.Before(b.JoinedAt)
	})
	return out, days, nil
}

func thirtyDayChallenge() *models.Challenge {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	return &models.Challenge{
		ID:        uuid.New(),
		Title:     "30 Days of Practice",
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 29),
	}
}

func day(n int) time.Time {
	return time.Date(2026, 8, n, 0, 0, 0, 0, time.UTC)
}

func newTestChallengeService(store challengeStore) *ChallengeService {
	return NewChallengeService(store, events.NopPublisher{}, 10, zerolog.Nop())
}

func TestChallengeService_RecordDailyProgress_AwardsPoints(t *testing.T) {
	challenge := thirtyDayChallenge()
	store := newFakeChallengeStore(challenge)
	user := uuid.New()
	require.NoError(t, store.Join(context.Background(), challenge.ID, user))
	svc := newTestChallengeService(store)

	progress, participant, err := svc.RecordDailyProgress(context.Background(), challenge.ID, user, day(1), true, nil)

	require.NoError(t, err)
	assert.True(t, progress.Completed)
	assert.Equal(t, 10, progress.PointsEarned)
	assert.Equal(t, 1, participant.CurrentStreak)
	assert.Equal(t, 10, participant.TotalPoints)
}

func TestChallengeService_RecordDailyProgress_SameDayOverwrites(t *testing.T) {
	challenge := thirtyDayChallenge()
	store := newFakeChallengeStore(challenge)
	user := uuid.New()
	require.NoError(t, store.Join(context.Background(), challenge.ID, user))
	svc := newTestChallengeService(store)

	_, _, err := svc.RecordDailyProgress(context.Background(), challenge.ID, user, day(1), true, nil)
	require.NoError(t, err)

	notes := "rough day"
	progress, participant, err := svc.RecordDailyProgress(context.Background(), challenge.ID, user, day(1), false, &notes)
	require.NoError(t, err)

	assert.False(t, progress.Completed)
	assert.Equal(t, 0, progress.PointsEarned)
	assert.Equal(t, 0, participant.TotalPoints, "resubmitting must not double count")
	assert.Equal(t, 0, participant.CurrentStreak)
	assert.Len(t, store.progress, 1, "one row per (challenge, user, day)")
}

func TestChallengeService_StreakResetsAfterMissedDay(t *testing.T) {
	challenge := thirtyDayChallenge()
	store := newFakeChallengeStore(challenge)
	user := uuid.New()
	require.NoError(t, store.Join(context.Background(), challenge.ID, user))
	svc := newTestChallengeService(store)

	for d := 1; d <= 5; d++ {
		_, participant, err := svc.RecordDailyProgress(context.Background(), challenge.ID, user, day(d), true, nil)
		require.NoError(t, err)
		assert.Equal(t, d, participant.CurrentStreak)
	}

	// Day 6 is missed entirely; day 7 starts a fresh streak
	_, participant, err := svc.RecordDailyProgress(context.Background(), challenge.ID, user, day(7), true, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, participant.CurrentStreak)
	assert.Equal(t, 60, participant.TotalPoints)
}

func TestChallengeService_IncompleteDayBreaksStreak(t *testing.T) {
	challenge := thirtyDayChallenge()
	store := newFakeChallengeStore(challenge)
	user := uuid.New()
	require.NoError(t, store.Join(context.Background(), challenge.ID, user))
	svc := newTestChallengeService(store)

	_, _, err := svc.RecordDailyProgress(context.Background(), challenge.ID, user, day(1), true, nil)
	require.NoError(t, err)
	_, _, err = svc.RecordDailyProgress(context.Background(), challenge.ID, user, day(2), false, nil)
	require.NoError(t, err)

	_, participant, err := svc.RecordDailyProgress(context.Background(), challenge.ID, user, day(3), true, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, participant.CurrentStreak)
}

func TestChallengeService_RecordDailyProgress_OutOfWindow(t *testing.T) {
	challenge := thirtyDayChallenge()
	store := newFakeChallengeStore(challenge)
	user := uuid.New()
	require.NoError(t, store.Join(context.Background(), challenge.ID, user))
	svc := newTestChallengeService(store)

	_, _, err := svc.RecordDailyProgress(context.Background(), challenge.ID, user, time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC), true, nil)

	assert.ErrorIs(t, err, apperrors.ErrProgressOutOfWindow)
}

func TestChallengeService_RecordDailyProgress_NonMember(t *testing.T) {
	challenge := thirtyDayChallenge()
	store := newFakeChallengeStore(challenge)
	svc := newTestChallengeService(store)

	_, _, err := svc.RecordDailyProgress(context.Background(), challenge.ID, uuid.New(), day(1), true, nil)

	assert.ErrorIs(t, err, apperrors.ErrNotChallengeMember)
}

func TestChallengeService_Leaderboard(t *testing.T) {
	challenge := thirtyDayChallenge()
	store := newFakeChallengeStore(challenge)
	svc := newTestChallengeService(store)

	leader := uuid.New()
	runnerUp := uuid.New()
	require.NoError(t, store.Join(context.Background(), challenge.ID, leader))
	require.NoError(t, store.Join(context.Background(), challenge.ID, runnerUp))

	for d := 1; d <= 3; d++ {
		_, _, err := svc.RecordDailyProgress(context.Background(), challenge.ID, leader, day(d), true, nil)
		require.NoError(t, err)
	}
	_, _, err := svc.RecordDailyProgress(context.Background(), challenge.ID, runnerUp, day(3), true, nil)
	require.NoError(t, err)

	entries, err := svc.Leaderboard(context.Background(), challenge.ID)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, leader, entries[0].UserID)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 30, entries[0].TotalPoints)
	assert.InDelta(t, 10.0, entries[0].CompletionPercentage, 0.001)
	assert.Equal(t, runnerUp, entries[1].UserID)
	assert.Equal(t, 2, entries[1].Rank)
}

func TestChallengeService_Leaderboard_FullCompletionIsHundredPercent(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	challenge := &models.Challenge{
		ID:        uuid.New(),
		Title:     "7 Days of Practice",
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 6),
	}
	store := newFakeChallengeStore(challenge)
	svc := newTestChallengeService(store)

	user := uuid.New()
	require.NoError(t, store.Join(context.Background(), challenge.ID, user))

	for d := 1; d <= 7; d++ {
		_, _, err := svc.RecordDailyProgress(context.Background(), challenge.ID, user, day(d), true, nil)
		require.NoError(t, err)
	}

	entries, err := svc.Leaderboard(context.Background(), challenge.ID)

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 7, entries[0].CurrentStreak)
	assert.InDelta(t, 100.0, entries[0].CompletionPercentage, 0.001)
}

func TestChallengeService_JoinTwiceIsNoOp(t *testing.T) {
	challenge := thirtyDayChallenge()
	store := newFakeChallengeStore(challenge)
	svc := newTestChallengeService(store)
	user := uuid.New()

	require.NoError(t, svc.JoinChallenge(context.Background(), challenge.ID, user))
	require.NoError(t, svc.JoinChallenge(context.Background(), challenge.ID, user))

	assert.Len(t, store.participants, 1)
}

func TestComputeStreak(t *testing.T) {
	row := func(n int, completed bool) *models.ChallengeProgress {
		return &models.ChallengeProgress{ProgressDate: day(n), Completed: completed}
	}

	tests := []struct {
		name string
		rows []*models.ChallengeProgress
		want int
	}{
		{"empty history", nil, 0},
		{"single completed day", []*models.ChallengeProgress{row(1, true)}, 1},
		{"consecutive run", []*models.ChallengeProgress{row(3, true), row(2, true), row(1, true)}, 3},
		{"gap terminates", []*models.ChallengeProgress{row(7, true), row(5, true), row(4, true)}, 1},
		{"incomplete day terminates", []*models.ChallengeProgress{row(3, true), row(2, false), row(1, true)}, 1},
		{"most recent day incomplete", []*models.ChallengeProgress{row(3, false), row(2, true), row(1, true)}, 2},
		{"no completed days", []*models.ChallengeProgress{row(2, false), row(1, false)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, computeStreak(tt.rows))
		})
	}
}
