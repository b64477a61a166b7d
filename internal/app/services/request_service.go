package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/emrekoch/skillbridge/internal/app/models"
	"github.com/emrekoch/skillbridge/internal/app/models/dto"
	"github.com/emrekoch/skillbridge/internal/pkg/apperrors"
)

// requestStore is the persistence surface the request service needs
type requestStore interface {
	Create(ctx context.Context, req *models.SkillRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.SkillRequest, error)
	ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]*models.SkillRequest, error)
	Close(ctx context.Context, id uuid.UUID) error
}

// RequestService manages the skill-request lifecycle
type RequestService struct {
	requests requestStore
}

// NewRequestService creates a new RequestService
func NewRequestService(requests requestStore) *RequestService {
	return &RequestService{requests: requests}
}

// CreateRequest opens a skill request for the given learner
func (s *RequestService) CreateRequest(ctx context.Context, requesterID uuid.UUID, in dto.CreateSkillRequestRequest) (*models.SkillRequest, error) {
	if !in.DesiredLevel.IsValid() {
		return nil, apperrors.NewValidationError("unknown skill level: " + string(in.DesiredLevel))
	}
	if (in.Latitude == nil) != (in.Longitude == nil) {
		return nil, apperrors.NewValidationError("latitude and longitude must be provided together")
	}

	req := &models.SkillRequest{
		RequesterID:    requesterID,
		SkillID:        in.SkillID,
		OfferedSkillID: in.OfferedSkillID,
		DesiredLevel:   in.DesiredLevel,
		LocationText:   in.LocationText,
		Latitude:       in.Latitude,
		Longitude:      in.Longitude,
		MaxDistanceKm:  in.MaxDistanceKm,
		IsRemote:       in.IsRemote,
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// GetRequest retrieves a skill request
func (s *RequestService) GetRequest(ctx context.Context, id uuid.UUID) (*models.SkillRequest, error) {
	return s.requests.GetByID(ctx, id)
}

// ListRequests returns the requests opened by a learner
func (s *RequestService) ListRequests(ctx context.Context, requesterID uuid.UUID) ([]*models.SkillRequest, error) {
	return s.requests.ListByRequester(ctx, requesterID)
}

// CloseRequest closes an open request. Only the requester may close it, and
// closing is idempotent on the status value, not on ownership.
func (s *RequestService) CloseRequest(ctx context.Context, id, actorID uuid.UUID) (*models.SkillRequest, error) {
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.RequesterID != actorID {
		return nil, apperrors.ErrRequestNotOwned
	}
	if req.Status != models.RequestOpen {
		return nil, apperrors.ErrRequestNotOpen
	}

	if err := s.requests.Close(ctx, id); err != nil {
		return nil, err
	}
	req.Status = models.RequestClosed
	return req, nil
}
