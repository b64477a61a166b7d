package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emrekoch/skillbridge/internal/app/models"
	"github.com/emrekoch/skillbridge/internal/pkg/apperrors"
)

// ChallengeRepository handles database operations for challenges,
// participants and daily progress.
type ChallengeRepository struct {
	db *pgxpool.Pool
}

// NewChallengeRepository creates a new ChallengeRepository
func NewChallengeRepository(db *pgxpool.Pool) *ChallengeRepository {
	return &ChallengeRepository{db: db}
}

// GetByID retrieves a challenge by its ID
func (r *ChallengeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Challenge, error) {
	query := `SELECT id, title, description, start_date, end_date, created_at FROM challenges WHERE id = $1`

	var c models.Challenge
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Title, &c.Description, &c.StartDate, &c.EndDate, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrChallengeNotFound
		}
		return nil, fmt.Errorf("error retrieving challenge %s: %w", id, err)
	}
	return &c, nil
}

// List retrieves all challenges, newest first
func (r *ChallengeRepository) List(ctx context.Context) ([]*models.Challenge, error) {
	query := `SELECT id, title, description, start_date, end_date, created_at FROM challenges ORDER BY start_date DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing challenges: %w", err)
	}
	defer rows.Close()

	var challenges []*models.Challenge
	for rows.Next() {
		var c models.Challenge
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.StartDate, &c.EndDate, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning challenge row: %w", err)
		}
		challenges = append(challenges, &c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating challenge rows: %w", err)
	}

	return challenges, nil
}

// Join creates a participant row; joining twice is a no-op
func (r *ChallengeRepository) Join(ctx context.Context, challengeID, userID uuid.UUID) error {
	query := `
		INSERT INTO challenge_participants (challenge_id, user_id, status)
		VALUES ($1, $2, 'joined')
		ON CONFLICT (challenge_id, user_id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, challengeID, userID)
	if err != nil {
		return fmt.Errorf("error joining challenge %s: %w", challengeID, err)
	}
	return nil
}

// GetParticipant retrieves a participant row
func (r *ChallengeRepository) GetParticipant(ctx context.Context, challengeID, userID uuid.UUID) (*models.ChallengeParticipant, error) {
	query := `
		SELECT challenge_id, user_id, status, current_streak, total_points, last_activity_at, joined_at
		FROM challenge_participants
		WHERE challenge_id = $1 AND user_id = $2
	`

	var p models.ChallengeParticipant
	err := r.db.QueryRow(ctx, query, challengeID, userID).Scan(
		&p.ChallengeID, &p.UserID, &p.Status, &p.CurrentStreak, &p.TotalPoints,
		&p.LastActivityAt, &p.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotChallengeMember
		}
		return nil, fmt.Errorf("error retrieving participant: %w", err)
	}
	return &p, nil
}

// UpsertProgress records a day's check-in. Resubmitting the same day
// overwrites that day's completed flag, points and notes; it never creates a
// second row (last write wins on the single allowed row).
func (r *ChallengeRepository) UpsertProgress(ctx context.Context, p *models.ChallengeProgress) error {
	query := `
		INSERT INTO challenge_progress (challenge_id, user_id, progress_date, completed, points_earned, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (challenge_id, user_id, progress_date)
		DO UPDATE SET completed = EXCLUDED.completed,
		              points_earned = EXCLUDED.points_earned,
		              notes = EXCLUDED.notes,
		              updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		p.ChallengeID, p.UserID, p.ProgressDate, p.Completed, p.PointsEarned, p.Notes,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error upserting challenge progress: %w", err)
	}
	return nil
}

// ListProgress retrieves all of a user's progress rows for a challenge,
// most recent day first.
func (r *ChallengeRepository) ListProgress(ctx context.Context, challengeID, userID uuid.UUID) ([]*models.ChallengeProgress, error) {
	query := `
		SELECT id, challenge_id, user_id, progress_date, completed, points_earned, notes, created_at, updated_at
		FROM challenge_progress
		WHERE challenge_id = $1 AND user_id = $2
		ORDER BY progress_date DESC
	`

	rows, err := r.db.Query(ctx, query, challengeID, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing challenge progress: %w", err)
	}
	defer rows.Close()

	var progress []*models.ChallengeProgress
	for rows.Next() {
		var p models.ChallengeProgress
		err := rows.Scan(
			&p.ID, &p.ChallengeID, &p.UserID, &p.ProgressDate, &p.Completed,
			&p.PointsEarned, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning progress row: %w", err)
		}
		progress = append(progress, &p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating progress rows: %w", err)
	}

	return progress, nil
}

// UpdateParticipantStats persists the recomputed streak and points
func (r *ChallengeRepository) UpdateParticipantStats(ctx context.Context, challengeID, userID uuid.UUID, streak, totalPoints int, lastActivity time.Time) error {
	query := `
		UPDATE challenge_participants
		SET current_streak = $3, total_points = $4, last_activity_at = $5
		WHERE challenge_id = $1 AND user_id = $2
	`

	result, err := r.db.Exec(ctx, query, challengeID, userID, streak, totalPoints, lastActivity)
	if err != nil {
		return fmt.Errorf("error updating participant stats: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotChallengeMember
	}
	return nil
}

// ListParticipants retrieves all participants of a challenge with their
// profiles and completed-day counts, ordered for ranking: points desc,
// streak desc, earliest join breaking remaining ties.
func (r *ChallengeRepository) ListParticipants(ctx context.Context, challengeID uuid.UUID) ([]*models.ChallengeParticipant, map[uuid.UUID]int, error) {
	query := `
		SELECT cp.challenge_id, cp.user_id, cp.status, cp.current_streak, cp.total_points,
		       cp.last_activity_at, cp.joined_at,
		       p.full_name,
		       COALESCE(done.completed_days, 0)
		FROM challenge_participants cp
		JOIN profiles p ON p.id = cp.user_id
		LEFT JOIN (
			SELECT user_id, COUNT(*) AS completed_days
			FROM challenge_progress
			WHERE challenge_id = $1 AND completed = TRUE
			GROUP BY user_id
		) done ON done.user_id = cp.user_id
		WHERE cp.challenge_id = $1
		ORDER BY cp.total_points DESC, cp.current_streak DESC, cp.joined_at ASC
	`

	rows, err := r.db.Query(ctx, query, challengeID)
	if err != nil {
		return nil, nil, fmt.Errorf("error listing participants: %w", err)
	}
	defer rows.Close()

	var participants []*models.ChallengeParticipant
	completedDays := make(map[uuid.UUID]int)
	for rows.Next() {
		var cp models.ChallengeParticipant
		var fullName string
		var days int
		err := rows.Scan(
			&cp.ChallengeID, &cp.UserID, &cp.Status, &cp.CurrentStreak, &cp.TotalPoints,
			&cp.LastActivityAt, &cp.JoinedAt,
			&fullName, &days,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("error scanning participant row: %w", err)
		}
		cp.User = &models.Profile{ID: cp.UserID, FullName: fullName}
		completedDays[cp.UserID] = days
		participants = append(participants, &cp)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating participant rows: %w", err)
	}

	return participants, completedDays, nil
}
