package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emrekoch/skillbridge/internal/app/models"
	"github.com/emrekoch/skillbridge/internal/pkg/apperrors"
	"github.com/emrekoch/skillbridge/internal/pkg/dberrors"
)

// matchColumns is the shared select list; last_activity_at folds in the
// newest message and updated_at (bumped by session and message activity) so
// health derivation sees every kind of movement on the match.
const matchColumns = `
	m.id, m.request_id, m.learner_id, m.teacher_id, m.skill_id, m.offered_skill_id,
	m.message, m.status, m.compatibility_score, m.distance_km,
	m.created_at, m.accepted_at, m.completed_at, m.updated_at,
	GREATEST(
		m.created_at,
		m.updated_at,
		COALESCE(m.accepted_at, m.created_at),
		COALESCE((SELECT MAX(msg.created_at) FROM messages msg WHERE msg.match_id = m.id), m.created_at)
	) AS last_activity_at`

// MatchRepository handles database operations for matches
type MatchRepository struct {
	db *pgxpool.Pool
}

// NewMatchRepository creates a new MatchRepository
func NewMatchRepository(db *pgxpool.Pool) *MatchRepository {
	return &MatchRepository{db: db}
}

func scanMatch(row pgx.Row) (*models.Match, error) {
	var m models.Match
	err := row.Scan(
		&m.ID,
		&m.RequestID,
		&m.LearnerID,
		&m.TeacherID,
		&m.SkillID,
		&m.OfferedSkillID,
		&m.Message,
		&m.Status,
		&m.CompatibilityScore,
		&m.DistanceKm,
		&m.CreatedAt,
		&m.AcceptedAt,
		&m.CompletedAt,
		&m.UpdatedAt,
		&m.LastActivityAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateOrIgnore idempotently inserts scored candidates. Conflicts on the
// (request_id, teacher_id) key or on the active learner/teacher/skill pair
// are skipped without touching the existing row; each result is tagged so
// callers can tell created from ignored. Re-running discovery therefore
// never duplicates rows or overwrites status and score.
func (r *MatchRepository) CreateOrIgnore(ctx context.Context, candidates []models.MatchCandidate) ([]models.MatchUpsertResult, error) {
	insertQuery := `
		INSERT INTO matches (request_id, learner_id, teacher_id, skill_id, compatibility_score, distance_km, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'pending')
		ON CONFLICT DO NOTHING
		RETURNING id, created_at, updated_at
	`

	results := make([]models.MatchUpsertResult, 0, len(candidates))
	for _, c := range candidates {
		m := &models.Match{
			RequestID:          &c.RequestID,
			LearnerID:          c.LearnerID,
			TeacherID:          c.TeacherID,
			SkillID:            c.SkillID,
			Status:             models.MatchPending,
			CompatibilityScore: c.CompatibilityScore,
			DistanceKm:         c.DistanceKm,
		}

		err := r.db.QueryRow(ctx, insertQuery,
			c.RequestID, c.LearnerID, c.TeacherID, c.SkillID, c.CompatibilityScore, c.DistanceKm,
		).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)

		if err != nil {
			if !errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("error inserting match candidate for teacher %s: %w", c.TeacherID, err)
			}

			// Conflict: surface the existing row unchanged. It may belong
			// to this request, or to an active pair created from another
			// request or a direct proposal.
			existing, lookupErr := r.GetByRequestAndTeacher(ctx, c.RequestID, c.TeacherID)
			if errors.Is(lookupErr, apperrors.ErrMatchNotFound) {
				existing, lookupErr = r.getActivePair(ctx, c.LearnerID, c.TeacherID, c.SkillID)
			}
			if lookupErr != nil {
				if errors.Is(lookupErr, apperrors.ErrMatchNotFound) {
					// Row vanished between insert and lookup; nothing to report.
					continue
				}
				return nil, lookupErr
			}
			results = append(results, models.MatchUpsertResult{Match: existing, Outcome: models.UpsertIgnored})
			continue
		}

		m.LastActivityAt = m.CreatedAt
		results = append(results, models.MatchUpsertResult{Match: m, Outcome: models.UpsertCreated})
	}

	return results, nil
}

// ProposeDirect creates a single pending match outside the discovery flow.
// The partial unique index on the active learner/teacher/skill pair turns a
// double-submit into ErrDuplicateMatch instead of a second row.
func (r *MatchRepository) ProposeDirect(ctx context.Context, learnerID, teacherID, skillID uuid.UUID, offeredSkillID *uuid.UUID, message *string) (*models.Match, error) {
	query := `
		INSERT INTO matches (learner_id, teacher_id, skill_id, offered_skill_id, message, status)
		VALUES ($1, $2, $3, $4, $5, 'pending')
		RETURNING id, created_at, updated_at
	`

	m := &models.Match{
		LearnerID:      learnerID,
		TeacherID:      teacherID,
		SkillID:        skillID,
		OfferedSkillID: offeredSkillID,
		Message:        message,
		Status:         models.MatchPending,
	}

	err := r.db.QueryRow(ctx, query, learnerID, teacherID, skillID, offeredSkillID, message).
		Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "matches_active_pair_key") {
			return nil, apperrors.ErrDuplicateMatch
		}
		return nil, fmt.Errorf("error creating direct match: %w", err)
	}

	m.LastActivityAt = m.CreatedAt
	return m, nil
}

// GetByRequestAndTeacher retrieves the match row for a request/teacher pair
func (r *MatchRepository) GetByRequestAndTeacher(ctx context.Context, requestID, teacherID uuid.UUID) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches m WHERE m.request_id = $1 AND m.teacher_id = $2`

	m, err := scanMatch(r.db.QueryRow(ctx, query, requestID, teacherID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMatchNotFound
		}
		return nil, fmt.Errorf("error retrieving match for request %s teacher %s: %w", requestID, teacherID, err)
	}
	return m, nil
}

// getActivePair retrieves the non-terminal match holding the active
// learner/teacher/skill slot, regardless of which request created it.
func (r *MatchRepository) getActivePair(ctx context.Context, learnerID, teacherID, skillID uuid.UUID) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches m
		WHERE m.learner_id = $1 AND m.teacher_id = $2 AND m.skill_id = $3
		  AND m.status IN ('pending', 'accepted')`

	m, err := scanMatch(r.db.QueryRow(ctx, query, learnerID, teacherID, skillID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMatchNotFound
		}
		return nil, fmt.Errorf("error retrieving active match for learner %s teacher %s: %w", learnerID, teacherID, err)
	}
	return m, nil
}

// GetByID retrieves a match with its derived last-activity timestamp
func (r *MatchRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches m WHERE m.id = $1`

	m, err := scanMatch(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMatchNotFound
		}
		return nil, fmt.Errorf("error retrieving match %s: %w", id, err)
	}
	return m, nil
}

// UpdateStatus persists a lifecycle transition, stamping accepted_at or
// completed_at as appropriate. Legality of the transition is the service
// layer's responsibility.
func (r *MatchRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.MatchStatus) (*models.Match, error) {
	query := `
		UPDATE matches m
		SET status = $2,
		    accepted_at = CASE WHEN $2 = 'accepted' THEN NOW() ELSE accepted_at END,
		    completed_at = CASE WHEN $2 = 'completed' THEN NOW() ELSE completed_at END,
		    updated_at = NOW()
		WHERE m.id = $1
		RETURNING ` + matchColumns

	m, err := scanMatch(r.db.QueryRow(ctx, query, id, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMatchNotFound
		}
		return nil, fmt.Errorf("error updating match %s status: %w", id, err)
	}
	return m, nil
}

// ListForUser retrieves matches where the user is a party, optionally
// filtered by status, newest first.
func (r *MatchRepository) ListForUser(ctx context.Context, userID uuid.UUID, status *models.MatchStatus, limit int) ([]*models.Match, error) {
	builder := squirrel.Select(
		"m.id", "m.request_id", "m.learner_id", "m.teacher_id", "m.skill_id", "m.offered_skill_id",
		"m.message", "m.status", "m.compatibility_score", "m.distance_km",
		"m.created_at", "m.accepted_at", "m.completed_at", "m.updated_at",
		`GREATEST(
			m.created_at,
			m.updated_at,
			COALESCE(m.accepted_at, m.created_at),
			COALESCE((SELECT MAX(msg.created_at) FROM messages msg WHERE msg.match_id = m.id), m.created_at)
		) AS last_activity_at`,
	).
		From("matches m").
		Where(squirrel.Or{
			squirrel.Eq{"m.learner_id": userID},
			squirrel.Eq{"m.teacher_id": userID},
		}).
		OrderBy("m.created_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	if status != nil {
		builder = builder.Where(squirrel.Eq{"m.status": *status})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building match list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing matches for user %s: %w", userID, err)
	}
	defer rows.Close()

	var matches []*models.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning match row: %w", err)
		}
		matches = append(matches, m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating match rows: %w", err)
	}

	return matches, nil
}

// TouchUpdatedAt bumps updated_at, used when related activity should count
// as match movement.
func (r *MatchRepository) TouchUpdatedAt(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.db.Exec(ctx, `UPDATE matches SET updated_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("error touching match %s: %w", id, err)
	}
	return nil
}
