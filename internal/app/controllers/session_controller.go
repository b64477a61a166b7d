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

// SessionController handles session scheduling and match conversations
type SessionController struct {
	sessionService *services.SessionService
}

// NewSessionController creates a new SessionController
func NewSessionController(sessionService *services.SessionService) *SessionController {
	return &SessionController{sessionService: sessionService}
}

// ProposeSession handles POST /matches/:id/sessions
func (c *SessionController) ProposeSession(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)
	matchID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondInvalidID(ctx, "match")
		return
	}

	var req dto.ProposeSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, err)
		return
	}

	session, err := c.sessionService.ProposeSession(ctx, matchID, userID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(session))
}

// ListSessions handles GET /matches/:id/sessions
func (c *SessionController) ListSessions(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)
	matchID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondInvalidID(ctx, "match")
		return
	}

	sessions, err := c.sessionService.ListSessions(ctx, matchID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(sessions))
}

// RespondToSession handles PATCH /sessions/:id
func (c *SessionController) RespondToSession(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)
	sessionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondInvalidID(ctx, "session")
		return
	}

	var req dto.RespondSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, err)
		return
	}

	session, err := c.sessionService.RespondToSession(ctx, sessionID, userID, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(session))
}

// SendMessage handles POST /matches/:id/messages
func (c *SessionController) SendMessage(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)
	matchID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondInvalidID(ctx, "match")
		return
	}

	var req dto.SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, err)
		return
	}

	message, err := c.sessionService.SendMessage(ctx, matchID, userID, req.Content)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(message))
}

// ListMessages handles GET /matches/:id/messages
func (c *SessionController) ListMessages(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)
	matchID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondInvalidID(ctx, "match")
		return
	}

	limit := 100
	if raw := ctx.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 500 {
			limit = parsed
		}
	}

	messages, err := c.sessionService.ListMessages(ctx, matchID, userID, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(messages))
}
