package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/emrekoch/skillbridge/internal/app/models"
	"github.com/emrekoch/skillbridge/internal/app/models/dto"
	"github.com/emrekoch/skillbridge/internal/app/services"
	"github.com/emrekoch/skillbridge/internal/middleware"
	"github.com/emrekoch/skillbridge/internal/pkg/apperrors"
)

// MatchController handles match lifecycle operations
type MatchController struct {
	matchService *services.MatchService
}

// NewMatchController creates a new MatchController
func NewMatchController(matchService *services.MatchService) *MatchController {
	return &MatchController{matchService: matchService}
}

// ProposeMatch handles POST /matches: a learner-initiated request to connect
// with a specific teacher.
func (c *MatchController) ProposeMatch(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthorized)
		return
	}

	var req dto.ProposeMatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, err)
		return
	}

	match, err := c.matchService.ProposeDirect(ctx, userID, req.TeacherID, req.SkillID, req.OfferedSkillID, req.Message)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.NewMatchResponse(match, time.Now(), c.matchService.Thresholds())
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetMatch handles GET /matches/:id
func (c *MatchController) GetMatch(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)
	matchID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondInvalidID(ctx, "match")
		return
	}

	match, err := c.matchService.GetMatch(ctx, matchID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.NewMatchResponse(match, time.Now(), c.matchService.Thresholds())
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// ListMatches handles GET /matches with optional status and limit filters
func (c *MatchController) ListMatches(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	var status *models.MatchStatus
	if raw := ctx.Query("status"); raw != "" {
		s := models.MatchStatus(raw)
		if !s.IsValid() {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Unknown match status").WithField("status")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		status = &s
	}

	limit := 50
	if raw := ctx.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 200 {
			limit = parsed
		}
	}

	matches, err := c.matchService.ListMatches(ctx, userID, status, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	now := time.Now()
	thresholds := c.matchService.Thresholds()
	responses := make([]dto.MatchResponse, 0, len(matches))
	for _, m := range matches {
		responses = append(responses, dto.NewMatchResponse(m, now, thresholds))
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(responses))
}

// TransitionMatch handles PATCH /matches/:id: accept, decline or complete
func (c *MatchController) TransitionMatch(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)
	matchID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondInvalidID(ctx, "match")
		return
	}

	var req dto.TransitionMatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, err)
		return
	}

	match, err := c.matchService.Transition(ctx, matchID, userID, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.NewMatchResponse(match, time.Now(), c.matchService.Thresholds())
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// respondBindingError reports a malformed or invalid request body
func respondBindingError(ctx *gin.Context, err error) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request data")
	errorDetail = errorDetail.WithDetails(err.Error())
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}

// respondInvalidID reports a path parameter that is not a UUID
func respondInvalidID(ctx *gin.Context, entity string) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+entity+" ID")
	errorDetail = errorDetail.WithDetails(entity + " ID must be a valid UUID")
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}
