package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/emrekoch/skillbridge/internal/app/models/dto"
	"github.com/emrekoch/skillbridge/internal/app/services"
	"github.com/emrekoch/skillbridge/internal/middleware"
)

// ChallengeController handles challenge operations
type ChallengeController struct {
	challengeService *services.ChallengeService
}

// NewChallengeController creates a new ChallengeController
func NewChallengeController(challengeService *services.ChallengeService) *ChallengeController {
	return &ChallengeController{challengeService: challengeService}
}

// ListChallenges handles GET /challenges
func (c *ChallengeController) ListChallenges(ctx *gin.Context) {
	challenges, err := c.challengeService.ListChallenges(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.ChallengeResponse, 0, len(challenges))
	for _, challenge := range challenges {
		responses = append(responses, dto.NewChallengeResponse(challenge))
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(responses))
}

// GetChallenge handles GET /challenges/:id
func (c *ChallengeController) GetChallenge(ctx *gin.Context) {
	challengeID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondInvalidID(ctx, "challenge")
		return
	}

	challenge, err := c.challengeService.GetChallenge(ctx, challengeID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewChallengeResponse(challenge)))
}

// JoinChallenge handles POST /challenges/:id/join
func (c *ChallengeController) JoinChallenge(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)
	challengeID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondInvalidID(ctx, "challenge")
		return
	}

	if err := c.challengeService.JoinChallenge(ctx, challengeID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"joined": true}))
}

// RecordProgress handles POST /challenges/:id/progress: upserts the day's
// check-in and returns the recomputed participant stats.
func (c *ChallengeController) RecordProgress(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)
	challengeID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondInvalidID(ctx, "challenge")
		return
	}

	var req dto.RecordProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, err)
		return
	}

	date := time.Now().UTC()
	if req.Date != "" {
		date, err = time.Parse("2006-01-02", req.Date)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Date must be in YYYY-MM-DD form").WithField("date")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
	}

	progress, participant, err := c.challengeService.RecordDailyProgress(ctx, challengeID, userID, date, req.Completed, req.Notes)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ProgressResponse{
		Progress:    *progress,
		Participant: *participant,
	}))
}

// Leaderboard handles GET /challenges/:id/leaderboard
func (c *ChallengeController) Leaderboard(ctx *gin.Context) {
	challengeID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondInvalidID(ctx, "challenge")
		return
	}

	entries, err := c.challengeService.Leaderboard(ctx, challengeID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.LeaderboardResponse{Entries: entries}))
}
