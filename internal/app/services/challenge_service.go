package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/emrekoch/skillbridge/internal/app/models"
	"github.com/emrekoch/skillbridge/internal/events"
	"github.com/emrekoch/skillbridge/internal/pkg/apperrors"
)

// challengeStore is the persistence surface the challenge engine needs
type challengeStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Challenge, error)
	List(ctx context.Context) ([]*models.Challenge, error)
	Join(ctx context.Context, challengeID, userID uuid.UUID) error
	GetParticipant(ctx context.Context, challengeID, userID uuid.UUID) (*models.ChallengeParticipant, error)
	UpsertProgress(ctx context.Context, p *models.ChallengeProgress) error
	ListProgress(ctx context.Context, challengeID, userID uuid.UUID) ([]*models.ChallengeProgress, error)
	UpdateParticipantStats(ctx context.Context, challengeID, userID uuid.UUID, streak, totalPoints int, lastActivity time.Time) error
	ListParticipants(ctx context.Context, challengeID uuid.UUID) ([]*models.ChallengeParticipant, map[uuid.UUID]int, error)
}

// ChallengeService drives daily check-ins, streak recomputation and
// leaderboard ranking.
type ChallengeService struct {
	challenges  challengeStore
	publisher   events.Publisher
	dailyPoints int
	logger      zerolog.Logger
}

// NewChallengeService creates a new ChallengeService
func NewChallengeService(challenges challengeStore, publisher events.Publisher, dailyPoints int, logger zerolog.Logger) *ChallengeService {
	return &ChallengeService{
		challenges:  challenges,
		publisher:   publisher,
		dailyPoints: dailyPoints,
		logger:      logger,
	}
}

// ListChallenges returns all challenges
func (s *ChallengeService) ListChallenges(ctx context.Context) ([]*models.Challenge, error) {
	return s.challenges.List(ctx)
}

// GetChallenge returns one challenge
func (s *ChallengeService) GetChallenge(ctx context.Context, id uuid.UUID) (*models.Challenge, error) {
	return s.challenges.GetByID(ctx, id)
}

// JoinChallenge enrolls the user; joining twice is a no-op
func (s *ChallengeService) JoinChallenge(ctx context.Context, challengeID, userID uuid.UUID) error {
	if _, err := s.challenges.GetByID(ctx, challengeID); err != nil {
		return err
	}
	return s.challenges.Join(ctx, challengeID, userID)
}

// RecordDailyProgress upserts the day's check-in and recomputes the
// participant's streak and total points. Re-submitting the same day
// overwrites that day's record; it never double counts.
func (s *ChallengeService) RecordDailyProgress(ctx context.Context, challengeID, userID uuid.UUID, date time.Time, completed bool, notes *string) (*models.ChallengeProgress, *models.ChallengeParticipant, error) {
	challenge, err := s.challenges.GetByID(ctx, challengeID)
	if err != nil {
		return nil, nil, err
	}
	if !challenge.Contains(date) {
		return nil, nil, apperrors.ErrProgressOutOfWindow
	}
	if _, err := s.challenges.GetParticipant(ctx, challengeID, userID); err != nil {
		return nil, nil, err
	}

	points := 0
	if completed {
		points = s.dailyPoints
	}

	progress := &models.ChallengeProgress{
		ChallengeID:  challengeID,
		UserID:       userID,
		ProgressDate: dateOnly(date),
		Completed:    completed,
		PointsEarned: points,
		Notes:        notes,
	}
	if err := s.challenges.UpsertProgress(ctx, progress); err != nil {
		return nil, nil, err
	}

	history, err := s.challenges.ListProgress(ctx, challengeID, userID)
	if err != nil {
		return nil, nil, err
	}

	streak := computeStreak(history)
	totalPoints := 0
	for _, row := range history {
		totalPoints += row.PointsEarned
	}

	now := time.Now()
	if err := s.challenges.UpdateParticipantStats(ctx, challengeID, userID, streak, totalPoints, now); err != nil {
		return nil, nil, err
	}

	participant, err := s.challenges.GetParticipant(ctx, challengeID, userID)
	if err != nil {
		return nil, nil, err
	}

	s.notifyProgressChanged(ctx, challengeID, userID, streak, totalPoints)
	return progress, participant, nil
}

// Leaderboard ranks participants by total points, then current streak, with
// the earliest joiner winning remaining ties. Ranks are sequential, not
// shared.
func (s *ChallengeService) Leaderboard(ctx context.Context, challengeID uuid.UUID) ([]models.LeaderboardEntry, error) {
	challenge, err := s.challenges.GetByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	participants, completedDays, err := s.challenges.ListParticipants(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	totalDays := challenge.TotalDays()
	entries := make([]models.LeaderboardEntry, 0, len(participants))
	for i, p := range participants {
		completion := float64(completedDays[p.UserID]) / float64(totalDays) * 100
		if completion > 100 {
			completion = 100
		}
		entry := models.LeaderboardEntry{
			UserID:               p.UserID,
			Rank:                 i + 1,
			TotalPoints:          p.TotalPoints,
			CurrentStreak:        p.CurrentStreak,
			CompletionPercentage: completion,
		}
		if p.User != nil {
			entry.FullName = p.User.FullName
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// computeStreak walks backward from the most recent completed day and counts
// consecutive completed days. Any missed or incomplete day ends the streak.
// Rows must be ordered by progress date descending.
func computeStreak(rows []*models.ChallengeProgress) int {
	streak := 0
	var prev time.Time
	for _, r := range rows {
		day := dateOnly(r.ProgressDate)
		if streak == 0 {
			if !r.Completed {
				continue
			}
			streak = 1
			prev = day
			continue
		}
		if !day.Equal(prev.AddDate(0, 0, -1)) || !r.Completed {
			break
		}
		streak++
		prev = day
	}
	return streak
}

// dateOnly truncates a timestamp to its UTC calendar day
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *ChallengeService) notifyProgressChanged(ctx context.Context, challengeID, userID uuid.UUID, streak, totalPoints int) {
	err := s.publisher.Publish(ctx, events.Event{
		Type:     events.ProgressChanged,
		EntityID: challengeID,
		ActorID:  userID,
		Payload: map[string]interface{}{
			"currentStreak": streak,
			"totalPoints":   totalPoints,
		},
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("challengeId", challengeID.String()).Msg("Failed to publish progress change event")
	}
}
