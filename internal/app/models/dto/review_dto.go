package dto

import (
	"github.com/emrekoch/skillbridge/internal/app/models"
)

// CreateReviewRequest submits a review for a completed match
type CreateReviewRequest struct {
	Rating  int     `json:"rating" binding:"required,min=1,max=5"`
	Comment *string `json:"comment,omitempty" binding:"omitempty,max=2000"`
}

// UpdateReviewRequest amends an existing review while edits remain
type UpdateReviewRequest struct {
	Rating  int     `json:"rating" binding:"required,min=1,max=5"`
	Comment *string `json:"comment,omitempty" binding:"omitempty,max=2000"`
}

// ReviewResponse is a review row with remaining edit allowance
type ReviewResponse struct {
	Review         models.Review `json:"review"`
	EditsRemaining int           `json:"editsRemaining"`
}

// NewReviewResponse maps a review model to its response shape
func NewReviewResponse(r *models.Review) ReviewResponse {
	remaining := models.MaxReviewEdits - r.EditCount
	if remaining < 0 {
		remaining = 0
	}
	return ReviewResponse{Review: *r, EditsRemaining: remaining}
}
