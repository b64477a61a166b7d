package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/emrekoch/skillbridge/internal/app/models"
	"github.com/emrekoch/skillbridge/internal/events"
	"github.com/emrekoch/skillbridge/internal/pkg/apperrors"
)

// matchStore is the persistence surface the match service needs
type matchStore interface {
	ProposeDirect(ctx context.Context, learnerID, teacherID, skillID uuid.UUID, offeredSkillID *uuid.UUID, message *string) (*models.Match, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Match, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.MatchStatus) (*models.Match, error)
	ListForUser(ctx context.Context, userID uuid.UUID, status *models.MatchStatus, limit int) ([]*models.Match, error)
}

// MatchService governs the match lifecycle: direct proposals, status
// transitions and reads scoped to the match parties.
type MatchService struct {
	matches    matchStore
	publisher  events.Publisher
	thresholds models.HealthThresholds
	logger     zerolog.Logger
}

// NewMatchService creates a new MatchService
func NewMatchService(matches matchStore, publisher events.Publisher, thresholds models.HealthThresholds, logger zerolog.Logger) *MatchService {
	return &MatchService{
		matches:    matches,
		publisher:  publisher,
		thresholds: thresholds,
		logger:     logger,
	}
}

// Thresholds exposes the configured health thresholds for response shaping
func (s *MatchService) Thresholds() models.HealthThresholds {
	return s.thresholds
}

// ProposeDirect creates a pending match outside the discovery flow, a
// user-initiated request to connect with a specific teacher.
func (s *MatchService) ProposeDirect(ctx context.Context, learnerID, teacherID, skillID uuid.UUID, offeredSkillID *uuid.UUID, message *string) (*models.Match, error) {
	if learnerID == teacherID {
		return nil, apperrors.NewValidationError("cannot propose a match with yourself")
	}

	match, err := s.matches.ProposeDirect(ctx, learnerID, teacherID, skillID, offeredSkillID, message)
	if err != nil {
		return nil, err
	}

	s.notifyMatchChanged(ctx, match.ID, learnerID, string(match.Status))
	return match, nil
}

// GetMatch retrieves a match, visible only to its learner and teacher
func (s *MatchService) GetMatch(ctx context.Context, matchID, actorID uuid.UUID) (*models.Match, error) {
	match, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.IsParty(actorID) {
		return nil, apperrors.ErrNotMatchParty
	}
	return match, nil
}

// ListMatches returns the matches the user participates in
func (s *MatchService) ListMatches(ctx context.Context, userID uuid.UUID, status *models.MatchStatus, limit int) ([]*models.Match, error) {
	return s.matches.ListForUser(ctx, userID, status, limit)
}

// Transition moves a match to a new status. Only the teacher may accept or
// decline a pending match; either party may mark an accepted match complete.
func (s *MatchService) Transition(ctx context.Context, matchID, actorID uuid.UUID, newStatus models.MatchStatus) (*models.Match, error) {
	if !newStatus.IsValid() {
		return nil, apperrors.NewValidationError("unknown match status: " + string(newStatus))
	}

	match, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}

	if !match.IsParty(actorID) {
		return nil, apperrors.ErrNotMatchParty
	}

	if !match.Status.CanTransitionTo(newStatus) {
		return nil, apperrors.ErrInvalidTransition
	}

	// Accepting or declining is the teacher's call; completion belongs to
	// either party.
	if match.Status == models.MatchPending && actorID != match.TeacherID {
		return nil, apperrors.ErrPermissionDenied
	}

	updated, err := s.matches.UpdateStatus(ctx, matchID, newStatus)
	if err != nil {
		return nil, err
	}

	s.notifyMatchChanged(ctx, updated.ID, actorID, string(updated.Status))
	return updated, nil
}

// notifyMatchChanged publishes a change event; failures are logged, never
// surfaced, so the primary write always wins.
func (s *MatchService) notifyMatchChanged(ctx context.Context, matchID, actorID uuid.UUID, status string) {
	err := s.publisher.Publish(ctx, events.Event{
		Type:     events.MatchChanged,
		EntityID: matchID,
		ActorID:  actorID,
		Payload:  map[string]interface{}{"status": status},
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("matchId", matchID.String()).Msg("Failed to publish match change event")
	}
}
