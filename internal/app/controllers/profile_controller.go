package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/emrekoch/skillbridge/internal/app/models/dto"
	"github.com/emrekoch/skillbridge/internal/app/services"
	"github.com/emrekoch/skillbridge/internal/middleware"
	"github.com/emrekoch/skillbridge/internal/pkg/apperrors"
)

// ProfileController handles profile and skill declaration operations
type ProfileController struct {
	profileService *services.ProfileService
}

// NewProfileController creates a new ProfileController
func NewProfileController(profileService *services.ProfileService) *ProfileController {
	return &ProfileController{profileService: profileService}
}

// GetProfile handles GET /profiles/:id
func (c *ProfileController) GetProfile(ctx *gin.Context) {
	profileID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondInvalidID(ctx, "profile")
		return
	}

	profile, skills, err := c.profileService.GetProfile(ctx, profileID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewProfileResponse(profile, skills)))
}

// UpdateMyProfile handles PUT /profiles/me
func (c *ProfileController) UpdateMyProfile(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthorized)
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, err)
		return
	}

	profile, err := c.profileService.UpdateProfile(ctx, userID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewProfileSummary(profile)))
}

// DeclareSkill handles POST /profiles/me/skills
func (c *ProfileController) DeclareSkill(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	var req dto.UpsertUserSkillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, err)
		return
	}

	skill, err := c.profileService.DeclareSkill(ctx, userID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewUserSkillResponse(skill)))
}

// RemoveSkill handles DELETE /profiles/me/skills/:skillId
func (c *ProfileController) RemoveSkill(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	skillID, err := uuid.Parse(ctx.Param("skillId"))
	if err != nil {
		respondInvalidID(ctx, "skill")
		return
	}

	if err := c.profileService.RemoveSkill(ctx, userID, skillID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"removed": true}))
}
