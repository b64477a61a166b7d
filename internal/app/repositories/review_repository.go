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
	"github.com/emrekoch/skillbridge/internal/pkg/dberrors"
)

// ReviewRepository handles database operations for reviews
type ReviewRepository struct {
	db *pgxpool.Pool
}

// NewReviewRepository creates a new ReviewRepository
func NewReviewRepository(db *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create inserts a review; the (match_id, reviewer_id) key makes a second
// review of the same match by the same reviewer fail with ErrDuplicateReview.
func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	query := `
		INSERT INTO reviews (match_id, reviewer_id, reviewee_id, skill_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, edit_count, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		review.MatchID, review.ReviewerID, review.RevieweeID, review.SkillID,
		review.Rating, review.Comment,
	).Scan(&review.ID, &review.EditCount, &review.CreatedAt, &review.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "reviews_match_reviewer_key") {
			return apperrors.ErrDuplicateReview
		}
		return fmt.Errorf("error creating review: %w", err)
	}
	return nil
}

// GetByID retrieves a review by its ID
func (r *ReviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	query := `
		SELECT id, match_id, reviewer_id, reviewee_id, skill_id, rating, comment,
		       edit_count, created_at, updated_at
		FROM reviews
		WHERE id = $1
	`

	var review models.Review
	err := r.db.QueryRow(ctx, query, id).Scan(
		&review.ID, &review.MatchID, &review.ReviewerID, &review.RevieweeID, &review.SkillID,
		&review.Rating, &review.Comment, &review.EditCount, &review.CreatedAt, &review.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrReviewNotFound
		}
		return nil, fmt.Errorf("error retrieving review %s: %w", id, err)
	}
	return &review, nil
}

// Update amends rating and comment and increments the edit counter in the
// same statement. The edit cap is rechecked in SQL so a concurrent edit
// cannot push the count past the limit.
func (r *ReviewRepository) Update(ctx context.Context, id uuid.UUID, rating int, comment *string) (*models.Review, error) {
	query := `
		UPDATE reviews
		SET rating = $2, comment = $3, edit_count = edit_count + 1, updated_at = NOW()
		WHERE id = $1 AND edit_count < $4
		RETURNING id, match_id, reviewer_id, reviewee_id, skill_id, rating, comment,
		          edit_count, created_at, updated_at
	`

	var review models.Review
	err := r.db.QueryRow(ctx, query, id, rating, comment, models.MaxReviewEdits).Scan(
		&review.ID, &review.MatchID, &review.ReviewerID, &review.RevieweeID, &review.SkillID,
		&review.Rating, &review.Comment, &review.EditCount, &review.CreatedAt, &review.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrReviewEditsExceeded
		}
		return nil, fmt.Errorf("error updating review %s: %w", id, err)
	}
	return &review, nil
}
