package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/emrekoch/skillbridge/internal/app/models"
	"github.com/emrekoch/skillbridge/internal/pkg/apperrors"
)

// reportStore is the persistence surface the report service needs
type reportStore interface {
	Create(ctx context.Context, report *models.Report) error
	List(ctx context.Context, limit int) ([]*models.Report, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ReportStatus) error
}

// ReportService persists user flags and exposes them to admins
type ReportService struct {
	reports reportStore
}

// NewReportService creates a new ReportService
func NewReportService(reports reportStore) *ReportService {
	return &ReportService{reports: reports}
}

// CreateReport flags another user for moderation
func (s *ReportService) CreateReport(ctx context.Context, reporterID, reportedUserID uuid.UUID, reason string, details *string) (*models.Report, error) {
	if reporterID == reportedUserID {
		return nil, apperrors.NewValidationError("cannot report yourself")
	}

	report := &models.Report{
		ReporterID:     reporterID,
		ReportedUserID: reportedUserID,
		Reason:         reason,
		Details:        details,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// ListReports returns recent reports for moderation review
func (s *ReportService) ListReports(ctx context.Context, limit int) ([]*models.Report, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	return s.reports.List(ctx, limit)
}

// ResolveReport marks a report handled
func (s *ReportService) ResolveReport(ctx context.Context, id uuid.UUID) error {
	return s.reports.UpdateStatus(ctx, id, models.ReportResolved)
}
