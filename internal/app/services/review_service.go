package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/emrekoch/skillbridge/internal/app/models"
	"github.com/emrekoch/skillbridge/internal/pkg/apperrors"
)

// reviewStore is the persistence surface the review service needs
type reviewStore interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Review, error)
	Update(ctx context.Context, id uuid.UUID, rating int, comment *string) (*models.Review, error)
}

// matchReader loads matches for review eligibility checks
type matchReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Match, error)
}

// ratingUpdater recomputes a profile's aggregate rating from its reviews
type ratingUpdater interface {
	UpdateRating(ctx context.Context, userID uuid.UUID) error
}

// ReviewService creates and edits post-completion reviews and keeps the
// reviewee's aggregate rating in sync.
type ReviewService struct {
	reviews  reviewStore
	matches  matchReader
	profiles ratingUpdater
	logger   zerolog.Logger
}

// NewReviewService creates a new ReviewService
func NewReviewService(reviews reviewStore, matches matchReader, profiles ratingUpdater, logger zerolog.Logger) *ReviewService {
	return &ReviewService{
		reviews:  reviews,
		matches:  matches,
		profiles: profiles,
		logger:   logger,
	}
}

// CreateReview records a review of the other party on a completed match.
// Only that match's learner or teacher may review, only once each.
func (s *ReviewService) CreateReview(ctx context.Context, matchID, reviewerID uuid.UUID, rating int, comment *string) (*models.Review, error) {
	match, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.IsParty(reviewerID) {
		return nil, apperrors.ErrNotMatchParty
	}
	if match.Status != models.MatchCompleted {
		return nil, apperrors.ErrMatchNotReviewable
	}

	revieweeID := match.TeacherID
	if reviewerID == match.TeacherID {
		revieweeID = match.LearnerID
	}

	review := &models.Review{
		MatchID:    matchID,
		ReviewerID: reviewerID,
		RevieweeID: revieweeID,
		SkillID:    &match.SkillID,
		Rating:     rating,
		Comment:    comment,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	s.refreshRating(ctx, revieweeID)
	return review, nil
}

// UpdateReview amends a review; after the edit cap is reached the review is
// immutable.
func (s *ReviewService) UpdateReview(ctx context.Context, reviewID, actorID uuid.UUID, rating int, comment *string) (*models.Review, error) {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.ReviewerID != actorID {
		return nil, apperrors.ErrPermissionDenied
	}
	if !review.CanEdit() {
		return nil, apperrors.ErrReviewEditsExceeded
	}

	updated, err := s.reviews.Update(ctx, reviewID, rating, comment)
	if err != nil {
		return nil, err
	}

	s.refreshRating(ctx, updated.RevieweeID)
	return updated, nil
}

// GetReview retrieves a review by ID
func (s *ReviewService) GetReview(ctx context.Context, reviewID uuid.UUID) (*models.Review, error) {
	return s.reviews.GetByID(ctx, reviewID)
}

// refreshRating recomputes the reviewee's aggregate rating. Failures are
// logged because the review itself is already durable.
func (s *ReviewService) refreshRating(ctx context.Context, userID uuid.UUID) {
	if err := s.profiles.UpdateRating(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Str("userId", userID.String()).Msg("Failed to refresh aggregate rating")
	}
}
