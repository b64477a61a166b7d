package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/emrekoch/skillbridge/internal/app/models/dto"
	"github.com/emrekoch/skillbridge/internal/app/services"
	"github.com/emrekoch/skillbridge/internal/middleware"
)

// ReviewController handles review operations
type ReviewController struct {
	reviewService *services.ReviewService
}

// NewReviewController creates a new ReviewController
func NewReviewController(reviewService *services.ReviewService) *ReviewController {
	return &ReviewController{reviewService: reviewService}
}

// CreateReview handles POST /matches/:id/reviews on a completed match
func (c *ReviewController) CreateReview(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)
	matchID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondInvalidID(ctx, "match")
		return
	}

	var req dto.CreateReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, err)
		return
	}

	review, err := c.reviewService.CreateReview(ctx, matchID, userID, req.Rating, req.Comment)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewReviewResponse(review)))
}

// UpdateReview handles PUT /reviews/:id; edits are capped
func (c *ReviewController) UpdateReview(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)
	reviewID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondInvalidID(ctx, "review")
		return
	}

	var req dto.UpdateReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, err)
		return
	}

	review, err := c.reviewService.UpdateReview(ctx, reviewID, userID, req.Rating, req.Comment)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewReviewResponse(review)))
}

// GetReview handles GET /reviews/:id
func (c *ReviewController) GetReview(ctx *gin.Context) {
	reviewID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondInvalidID(ctx, "review")
		return
	}

	review, err := c.reviewService.GetReview(ctx, reviewID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewReviewResponse(review)))
}
