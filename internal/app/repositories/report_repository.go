package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emrekoch/skillbridge/internal/app/models"
)

// ReportRepository handles database operations for moderation reports
type ReportRepository struct {
	db *pgxpool.Pool
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create inserts a new report
func (r *ReportRepository) Create(ctx context.Context, report *models.Report) error {
	query := `
		INSERT INTO reports (reporter_id, reported_user_id, reason, details)
		VALUES ($1, $2, $3, $4)
		RETURNING id, status, created_at
	`

	err := r.db.QueryRow(ctx, query,
		report.ReporterID, report.ReportedUserID, report.Reason, report.Details,
	).Scan(&report.ID, &report.Status, &report.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating report: %w", err)
	}
	return nil
}

// List retrieves reports with reporter and reported-user names, newest first
func (r *ReportRepository) List(ctx context.Context, limit int) ([]*models.Report, error) {
	query := `
		SELECT r.id, r.reporter_id, r.reported_user_id, r.reason, r.details, r.status, r.created_at,
		       rep.full_name, tgt.full_name
		FROM reports r
		JOIN profiles rep ON rep.id = r.reporter_id
		JOIN profiles tgt ON tgt.id = r.reported_user_id
		ORDER BY r.created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing reports: %w", err)
	}
	defer rows.Close()

	var reports []*models.Report
	for rows.Next() {
		var rp models.Report
		var reporterName, reportedName string
		err := rows.Scan(
			&rp.ID, &rp.ReporterID, &rp.ReportedUserID, &rp.Reason, &rp.Details,
			&rp.Status, &rp.CreatedAt, &reporterName, &reportedName,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning report row: %w", err)
		}
		rp.Reporter = &models.Profile{ID: rp.ReporterID, FullName: reporterName}
		rp.ReportedUser = &models.Profile{ID: rp.ReportedUserID, FullName: reportedName}
		reports = append(reports, &rp)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating report rows: %w", err)
	}

	return reports, nil
}

// UpdateStatus sets a report's moderation status
func (r *ReportRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ReportStatus) error {
	query := `UPDATE reports SET status = $2 WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("error updating report status: %w", err)
	}
	return nil
}
