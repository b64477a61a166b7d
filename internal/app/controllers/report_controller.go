package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/emrekoch/skillbridge/internal/app/models/dto"
	"github.com/emrekoch/skillbridge/internal/app/services"
	"github.com/emrekoch/skillbridge/internal/middleware"
)

// ReportController handles moderation reports
type ReportController struct {
	reportService *services.ReportService
}

// NewReportController creates a new ReportController
func NewReportController(reportService *services.ReportService) *ReportController {
	return &ReportController{reportService: reportService}
}

// CreateReport handles POST /reports
func (c *ReportController) CreateReport(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	var req dto.CreateReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, err)
		return
	}

	reportedID, err := uuid.Parse(req.ReportedUserID)
	if err != nil {
		respondInvalidID(ctx, "reported user")
		return
	}

	report, err := c.reportService.CreateReport(ctx, userID, reportedID, req.Reason, req.Details)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(report))
}

// ListReports handles GET /admin/reports, admin only
func (c *ReportController) ListReports(ctx *gin.Context) {
	limit := 100
	if raw := ctx.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	reports, err := c.reportService.ListReports(ctx, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(reports))
}

// ResolveReport handles PATCH /admin/reports/:id, admin only
func (c *ReportController) ResolveReport(ctx *gin.Context) {
	reportID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondInvalidID(ctx, "report")
		return
	}

	if err := c.reportService.ResolveReport(ctx, reportID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"resolved": true}))
}
