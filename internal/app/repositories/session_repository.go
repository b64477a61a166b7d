package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emrekoch/skillbridge/internal/app/models"
	"github.com/emrekoch/skillbridge/internal/pkg/apperrors"
)

// SessionRepository handles database operations for proposed sessions
type SessionRepository struct {
	db *pgxpool.Pool
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new session proposal
func (r *SessionRepository) Create(ctx context.Context, s *models.Session) error {
	query := `
		INSERT INTO sessions (match_id, proposed_by, proposed_time, location, mode, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, status, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		s.MatchID, s.ProposedBy, s.ProposedTime, s.Location, s.Mode, s.Notes,
	).Scan(&s.ID, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating session: %w", err)
	}
	return nil
}

// GetByID retrieves a session by its ID
func (r *SessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	query := `
		SELECT id, match_id, proposed_by, proposed_time, location, mode, notes, status, created_at, updated_at
		FROM sessions
		WHERE id = $1
	`

	var s models.Session
	err := r.db.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.MatchID, &s.ProposedBy, &s.ProposedTime, &s.Location,
		&s.Mode, &s.Notes, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving session %s: %w", id, err)
	}
	return &s, nil
}

// ListByMatch retrieves all sessions proposed on a match, newest first
func (r *SessionRepository) ListByMatch(ctx context.Context, matchID uuid.UUID) ([]*models.Session, error) {
	query := `
		SELECT id, match_id, proposed_by, proposed_time, location, mode, notes, status, created_at, updated_at
		FROM sessions
		WHERE match_id = $1
		ORDER BY proposed_time DESC
	`

	rows, err := r.db.Query(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("error listing sessions for match %s: %w", matchID, err)
	}
	defer rows.Close()

	var sessions []*models.Session
	for rows.Next() {
		var s models.Session
		err := rows.Scan(
			&s.ID, &s.MatchID, &s.ProposedBy, &s.ProposedTime, &s.Location,
			&s.Mode, &s.Notes, &s.Status, &s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning session row: %w", err)
		}
		sessions = append(sessions, &s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating session rows: %w", err)
	}

	return sessions, nil
}

// UpdateStatus sets a session's status
func (r *SessionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.SessionStatus) error {
	query := `UPDATE sessions SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("error updating session status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}
