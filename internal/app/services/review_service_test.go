package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emrekoch/skillbridge/internal/app/models"
	"github.com/emrekoch/skillbridge/internal/pkg/apperrors"
)

// fakeReviewStore enforces the one-review-per-(match, reviewer) key and the
// edit cap the way the reviews table does.
type fakeReviewStore struct {
	reviews map[uuid.UUID]*models.Review
}

func newFakeReviewStore() *fakeReviewStore {
	return &fakeReviewStore{reviews: make(map[uuid.UUID]*models.Review)}
}

func (s *fakeReviewStore) Create(_ context.Context, review *models.Review) error {
	for _, r := range s.reviews {
		if r.MatchID == review.MatchID && r.ReviewerID == review.ReviewerID {
			return apperrors.ErrDuplicateReview
		}
	}
	review.ID = uuid.New()
	s.reviews[review.ID] = review
	return nil
}

func (s *fakeReviewStore) GetByID(_ context.Context, id uuid.UUID) (*models.Review, error) {
	r, ok := s.reviews[id]
	if !ok {
		return nil, apperrors.ErrReviewNotFound
	}
	return r, nil
}

func (s *fakeReviewStore) Update(_ context.Context, id uuid.UUID, rating int, comment *string) (*models.Review, error) {
	r, ok := s.reviews[id]
	if !ok {
		return nil, apperrors.ErrReviewNotFound
	}
	if !r.CanEdit() {
		return nil, apperrors.ErrReviewEditsExceeded
	}
	r.Rating = rating
	r.Comment = comment
	r.EditCount++
	return r, nil
}

type fakeRatingUpdater struct {
	calls []uuid.UUID
}

func (f *fakeRatingUpdater) UpdateRating(_ context.Context, userID uuid.UUID) error {
	f.calls = append(f.calls, userID)
	return nil
}

func completedMatch(learnerID, teacherID uuid.UUID) *models.Match {
	now := time.Now()
	return &models.Match{
		ID:          uuid.New(),
		LearnerID:   learnerID,
		TeacherID:   teacherID,
		SkillID:     uuid.New(),
		Status:      models.MatchCompleted,
		CreatedAt:   now.Add(-48 * time.Hour),
		CompletedAt: &now,
	}
}

func newTestReviewService(store *fakeReviewStore, matches *fakeMatchStore, ratings *fakeRatingUpdater) *ReviewService {
	return NewReviewService(store, matches, ratings, zerolog.Nop())
}

func TestReviewService_CreateReview(t *testing.T) {
	learner := uuid.New()
	teacher := uuid.New()
	m := completedMatch(learner, teacher)
	ratings := &fakeRatingUpdater{}
	svc := newTestReviewService(newFakeReviewStore(), newFakeMatchStore(m), ratings)

	review, err := svc.CreateReview(context.Background(), m.ID, learner, 5, nil)

	require.NoError(t, err)
	assert.Equal(t, teacher, review.RevieweeID, "the learner reviews the teacher")
	assert.Equal(t, 5, review.Rating)
	assert.Equal(t, []uuid.UUID{teacher}, ratings.calls)
}

func TestReviewService_CreateReview_RequiresCompletedMatch(t *testing.T) {
	learner := uuid.New()
	teacher := uuid.New()

	for _, status := range []models.MatchStatus{models.MatchPending, models.MatchAccepted, models.MatchDeclined} {
		m := completedMatch(learner, teacher)
		m.Status = status
		svc := newTestReviewService(newFakeReviewStore(), newFakeMatchStore(m), &fakeRatingUpdater{})

		_, err := svc.CreateReview(context.Background(), m.ID, learner, 4, nil)
		assert.ErrorIs(t, err, apperrors.ErrMatchNotReviewable, "status %s must not be reviewable", status)
	}
}

func TestReviewService_CreateReview_NonPartyRejected(t *testing.T) {
	m := completedMatch(uuid.New(), uuid.New())
	svc := newTestReviewService(newFakeReviewStore(), newFakeMatchStore(m), &fakeRatingUpdater{})

	_, err := svc.CreateReview(context.Background(), m.ID, uuid.New(), 4, nil)

	assert.ErrorIs(t, err, apperrors.ErrNotMatchParty)
}

func TestReviewService_CreateReview_OncePerReviewer(t *testing.T) {
	learner := uuid.New()
	m := completedMatch(learner, uuid.New())
	svc := newTestReviewService(newFakeReviewStore(), newFakeMatchStore(m), &fakeRatingUpdater{})

	_, err := svc.CreateReview(context.Background(), m.ID, learner, 5, nil)
	require.NoError(t, err)

	_, err = svc.CreateReview(context.Background(), m.ID, learner, 3, nil)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateReview)
}

func TestReviewService_UpdateReview_EditCap(t *testing.T) {
	learner := uuid.New()
	m := completedMatch(learner, uuid.New())
	svc := newTestReviewService(newFakeReviewStore(), newFakeMatchStore(m), &fakeRatingUpdater{})

	review, err := svc.CreateReview(context.Background(), m.ID, learner, 5, nil)
	require.NoError(t, err)

	for i := 1; i <= models.MaxReviewEdits; i++ {
		updated, err := svc.UpdateReview(context.Background(), review.ID, learner, 4, nil)
		require.NoError(t, err)
		assert.Equal(t, i, updated.EditCount)
	}

	_, err = svc.UpdateReview(context.Background(), review.ID, learner, 2, nil)
	assert.ErrorIs(t, err, apperrors.ErrReviewEditsExceeded)
}

func TestReviewService_UpdateReview_OwnerOnly(t *testing.T) {
	learner := uuid.New()
	m := completedMatch(learner, uuid.New())
	svc := newTestReviewService(newFakeReviewStore(), newFakeMatchStore(m), &fakeRatingUpdater{})

	review, err := svc.CreateReview(context.Background(), m.ID, learner, 5, nil)
	require.NoError(t, err)

	_, err = svc.UpdateReview(context.Background(), review.ID, uuid.New(), 1, nil)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}
