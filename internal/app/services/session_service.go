package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/emrekoch/skillbridge/internal/app/models"
	"github.com/emrekoch/skillbridge/internal/app/models/dto"
	"github.com/emrekoch/skillbridge/internal/events"
	"github.com/emrekoch/skillbridge/internal/pkg/apperrors"
)

// sessionStore is the persistence surface the session service needs
type sessionStore interface {
	Create(ctx context.Context, s *models.Session) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Session, error)
	ListByMatch(ctx context.Context, matchID uuid.UUID) ([]*models.Session, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.SessionStatus) error
}

// messageStore is the persistence surface for match conversations
type messageStore interface {
	Create(ctx context.Context, m *models.Message) error
	ListByMatch(ctx context.Context, matchID uuid.UUID, limit int) ([]*models.Message, error)
}

// matchToucher bumps the match activity stamp alongside conversation writes
type matchToucher interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Match, error)
	TouchUpdatedAt(ctx context.Context, id uuid.UUID, at time.Time) error
}

// SessionService schedules sessions and relays messages on accepted matches
type SessionService struct {
	sessions  sessionStore
	messages  messageStore
	matches   matchToucher
	publisher events.Publisher
	logger    zerolog.Logger
}

// NewSessionService creates a new SessionService
func NewSessionService(sessions sessionStore, messages messageStore, matches matchToucher, publisher events.Publisher, logger zerolog.Logger) *SessionService {
	return &SessionService{
		sessions:  sessions,
		messages:  messages,
		matches:   matches,
		publisher: publisher,
		logger:    logger,
	}
}

// ProposeSession proposes a session slot on an accepted match
func (s *SessionService) ProposeSession(ctx context.Context, matchID, actorID uuid.UUID, in dto.ProposeSessionRequest) (*models.Session, error) {
	match, err := s.requireAcceptedParty(ctx, matchID, actorID)
	if err != nil {
		return nil, err
	}
	if !in.Mode.IsValid() {
		return nil, apperrors.NewValidationError("unknown session mode: " + string(in.Mode))
	}

	session := &models.Session{
		MatchID:      match.ID,
		ProposedBy:   actorID,
		ProposedTime: in.ProposedTime,
		Location:     in.Location,
		Mode:         in.Mode,
		Notes:        in.Notes,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	s.touchMatch(ctx, match.ID)
	return session, nil
}

// RespondToSession accepts or declines a proposed session. Only the party
// who did not propose it may respond.
func (s *SessionService) RespondToSession(ctx context.Context, sessionID, actorID uuid.UUID, status models.SessionStatus) (*models.Session, error) {
	if status != models.SessionAccepted && status != models.SessionDeclined {
		return nil, apperrors.NewValidationError("session response must be accepted or declined")
	}

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	match, err := s.matches.GetByID(ctx, session.MatchID)
	if err != nil {
		return nil, err
	}
	if !match.IsParty(actorID) {
		return nil, apperrors.ErrNotMatchParty
	}
	if session.ProposedBy == actorID {
		return nil, apperrors.NewForbiddenError("cannot respond to your own session proposal")
	}
	if session.Status != models.SessionProposed {
		return nil, apperrors.NewConflictError("session has already been responded to")
	}

	if err := s.sessions.UpdateStatus(ctx, sessionID, status); err != nil {
		return nil, err
	}
	session.Status = status
	return session, nil
}

// ListSessions returns the sessions proposed on a match, party-only
func (s *SessionService) ListSessions(ctx context.Context, matchID, actorID uuid.UUID) ([]*models.Session, error) {
	match, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.IsParty(actorID) {
		return nil, apperrors.ErrNotMatchParty
	}
	return s.sessions.ListByMatch(ctx, matchID)
}

// SendMessage posts a message to an accepted match's conversation
func (s *SessionService) SendMessage(ctx context.Context, matchID, senderID uuid.UUID, content string) (*models.Message, error) {
	match, err := s.requireAcceptedParty(ctx, matchID, senderID)
	if err != nil {
		return nil, err
	}

	message := &models.Message{
		MatchID:  match.ID,
		SenderID: senderID,
		Content:  content,
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, err
	}

	s.touchMatch(ctx, match.ID)
	s.notifyMessage(ctx, message)
	return message, nil
}

// ListMessages returns a match's conversation, party-only
func (s *SessionService) ListMessages(ctx context.Context, matchID, actorID uuid.UUID, limit int) ([]*models.Message, error) {
	match, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.IsParty(actorID) {
		return nil, apperrors.ErrNotMatchParty
	}
	return s.messages.ListByMatch(ctx, matchID, limit)
}

// requireAcceptedParty loads the match and checks the actor is a party and
// the match is accepted.
func (s *SessionService) requireAcceptedParty(ctx context.Context, matchID, actorID uuid.UUID) (*models.Match, error) {
	match, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.IsParty(actorID) {
		return nil, apperrors.ErrNotMatchParty
	}
	if match.Status != models.MatchAccepted {
		return nil, apperrors.NewConflictError("match must be accepted first")
	}
	return match, nil
}

// touchMatch refreshes the match activity stamp so health status reflects
// ongoing sessions and conversations. Failures are logged, not surfaced.
func (s *SessionService) touchMatch(ctx context.Context, matchID uuid.UUID) {
	if err := s.matches.TouchUpdatedAt(ctx, matchID, time.Now().UTC()); err != nil {
		s.logger.Warn().Err(err).Str("matchId", matchID.String()).Msg("Failed to refresh match activity stamp")
	}
}

func (s *SessionService) notifyMessage(ctx context.Context, m *models.Message) {
	err := s.publisher.Publish(ctx, events.Event{
		Type:     events.MessageNew,
		EntityID: m.MatchID,
		ActorID:  m.SenderID,
		Payload:  map[string]interface{}{"messageId": m.ID.String()},
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("matchId", m.MatchID.String()).Msg("Failed to publish message event")
	}
}
