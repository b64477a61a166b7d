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

// SkillRequestRepository handles database operations for skill requests
type SkillRequestRepository struct {
	db *pgxpool.Pool
}

// NewSkillRequestRepository creates a new SkillRequestRepository
func NewSkillRequestRepository(db *pgxpool.Pool) *SkillRequestRepository {
	return &SkillRequestRepository{db: db}
}

// Create inserts a new open skill request
func (r *SkillRequestRepository) Create(ctx context.Context, req *models.SkillRequest) error {
	query := `
		INSERT INTO skill_requests (
			requester_id, skill_id, offered_skill_id, desired_level,
			location_text, latitude, longitude, max_distance_km, is_remote, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'open')
		RETURNING id, status, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		req.RequesterID, req.SkillID, req.OfferedSkillID, req.DesiredLevel,
		req.LocationText, req.Latitude, req.Longitude, req.MaxDistanceKm, req.IsRemote,
	).Scan(&req.ID, &req.Status, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating skill request: %w", err)
	}
	return nil
}

// GetByID retrieves a skill request with its skill
func (r *SkillRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.SkillRequest, error) {
	query := `
		SELECT sr.id, sr.requester_id, sr.skill_id, sr.offered_skill_id, sr.desired_level,
		       sr.location_text, sr.latitude, sr.longitude, sr.max_distance_km, sr.is_remote,
		       sr.status, sr.created_at, sr.updated_at,
		       s.name, s.category
		FROM skill_requests sr
		JOIN skills s ON s.id = sr.skill_id
		WHERE sr.id = $1
	`

	var req models.SkillRequest
	skill := models.Skill{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.RequesterID, &req.SkillID, &req.OfferedSkillID, &req.DesiredLevel,
		&req.LocationText, &req.Latitude, &req.Longitude, &req.MaxDistanceKm, &req.IsRemote,
		&req.Status, &req.CreatedAt, &req.UpdatedAt,
		&skill.Name, &skill.Category,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRequestNotFound
		}
		return nil, fmt.Errorf("error retrieving skill request %s: %w", id, err)
	}

	skill.ID = req.SkillID
	req.Skill = &skill
	return &req, nil
}

// ListByRequester retrieves a user's skill requests, newest first
func (r *SkillRequestRepository) ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]*models.SkillRequest, error) {
	query := `
		SELECT sr.id, sr.requester_id, sr.skill_id, sr.offered_skill_id, sr.desired_level,
		       sr.location_text, sr.latitude, sr.longitude, sr.max_distance_km, sr.is_remote,
		       sr.status, sr.created_at, sr.updated_at,
		       s.name, s.category
		FROM skill_requests sr
		JOIN skills s ON s.id = sr.skill_id
		WHERE sr.requester_id = $1
		ORDER BY sr.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, requesterID)
	if err != nil {
		return nil, fmt.Errorf("error listing skill requests for %s: %w", requesterID, err)
	}
	defer rows.Close()

	var requests []*models.SkillRequest
	for rows.Next() {
		var req models.SkillRequest
		skill := models.Skill{}
		err := rows.Scan(
			&req.ID, &req.RequesterID, &req.SkillID, &req.OfferedSkillID, &req.DesiredLevel,
			&req.LocationText, &req.Latitude, &req.Longitude, &req.MaxDistanceKm, &req.IsRemote,
			&req.Status, &req.CreatedAt, &req.UpdatedAt,
			&skill.Name, &skill.Category,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning skill request row: %w", err)
		}
		skill.ID = req.SkillID
		req.Skill = &skill
		requests = append(requests, &req)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating skill request rows: %w", err)
	}

	return requests, nil
}

// Close marks a request closed
func (r *SkillRequestRepository) Close(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx,
		`UPDATE skill_requests SET status = 'closed', updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error closing skill request %s: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrRequestNotFound
	}
	return nil
}
