package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/emrekoch/skillbridge/internal/app/models/dto"
	"github.com/emrekoch/skillbridge/internal/app/services"
	"github.com/emrekoch/skillbridge/internal/middleware"
)

// RequestController handles skill request operations
type RequestController struct {
	requestService *services.RequestService
}

// NewRequestController creates a new RequestController
func NewRequestController(requestService *services.RequestService) *RequestController {
	return &RequestController{requestService: requestService}
}

// CreateRequest handles POST /requests
func (c *RequestController) CreateRequest(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	var req dto.CreateSkillRequestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, err)
		return
	}

	request, err := c.requestService.CreateRequest(ctx, userID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewSkillRequestResponse(request)))
}

// GetRequest handles GET /requests/:id
func (c *RequestController) GetRequest(ctx *gin.Context) {
	requestID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondInvalidID(ctx, "request")
		return
	}

	request, err := c.requestService.GetRequest(ctx, requestID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewSkillRequestResponse(request)))
}

// ListMyRequests handles GET /requests
func (c *RequestController) ListMyRequests(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	requests, err := c.requestService.ListRequests(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.SkillRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, dto.NewSkillRequestResponse(r))
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(responses))
}

// CloseRequest handles POST /requests/:id/close
func (c *RequestController) CloseRequest(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)
	requestID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondInvalidID(ctx, "request")
		return
	}

	request, err := c.requestService.CloseRequest(ctx, requestID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewSkillRequestResponse(request)))
}
