package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/emrekoch/skillbridge/internal/app/models"
	"github.com/emrekoch/skillbridge/internal/app/models/dto"
	"github.com/emrekoch/skillbridge/internal/app/services"
	"github.com/emrekoch/skillbridge/internal/middleware"
)

// DiscoveryController handles teacher discovery and request-driven matching
type DiscoveryController struct {
	discoveryService *services.DiscoveryService
	thresholds       models.HealthThresholds
}

// NewDiscoveryController creates a new DiscoveryController
func NewDiscoveryController(discoveryService *services.DiscoveryService, thresholds models.HealthThresholds) *DiscoveryController {
	return &DiscoveryController{
		discoveryService: discoveryService,
		thresholds:       thresholds,
	}
}

// Discover handles GET /discover: a ranked candidate page with no side
// effects.
func (c *DiscoveryController) Discover(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	var query dto.DiscoverQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		respondBindingError(ctx, err)
		return
	}
	if (query.Latitude == nil) != (query.Longitude == nil) {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "lat and lon must be provided together")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	ranked, err := c.discoveryService.Discover(ctx, userID, query)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.DiscoverResponse{Candidates: make([]dto.CandidateResponse, 0, len(ranked))}
	for _, candidate := range ranked {
		resp.Candidates = append(resp.Candidates, dto.NewCandidateResponse(candidate))
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// FindMatches handles POST /requests/:id/find-matches: discovery plus
// scoring plus idempotent match persistence for one open request.
func (c *DiscoveryController) FindMatches(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)
	requestID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondInvalidID(ctx, "request")
		return
	}

	results, err := c.discoveryService.FindMatchesForRequest(ctx, userID, requestID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	now := time.Now()
	resp := dto.FindMatchesResponse{Matches: make([]dto.MatchResponse, 0, len(results))}
	for _, r := range results {
		resp.Matches = append(resp.Matches, dto.NewMatchResponse(r.Match, now, c.thresholds))
		if r.Outcome == models.UpsertCreated {
			resp.Created++
		} else {
			resp.Ignored++
		}
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
