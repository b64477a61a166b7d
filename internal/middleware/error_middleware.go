package middleware

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emrekoch/skillbridge/internal/app/models/dto"
	"github.com/emrekoch/skillbridge/internal/pkg/apperrors"
	"github.com/emrekoch/skillbridge/internal/pkg/logger"
)

// HandleAPIError maps application errors to their HTTP status and stable
// error code. Anything unrecognized becomes a logged 500 without leaking
// internals to the caller.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case apperrors.Is(err, apperrors.ErrUnauthorized,
		apperrors.ErrTokenExpired,
		apperrors.ErrTokenInvalid,
		apperrors.ErrInvalidFormat):
		respondError(c, 401, dto.ErrorCodeUnauthorized, "Authentication required")

	case errors.Is(err, apperrors.ErrNotMatchParty):
		respondError(c, 403, dto.ErrorCodeNotMatchParty, "You are not a party to this match")

	case errors.Is(err, apperrors.ErrRequestNotOwned):
		respondError(c, 403, dto.ErrorCodeForbidden, "Skill request belongs to another user")

	case errors.Is(err, apperrors.ErrPermissionDenied):
		respondError(c, 403, dto.ErrorCodeForbidden, "Permission denied")

	case errors.Is(err, apperrors.ErrMatchNotFound):
		respondError(c, 404, dto.ErrorCodeResourceNotFound, "Match not found")

	case errors.Is(err, apperrors.ErrRequestNotFound):
		respondError(c, 404, dto.ErrorCodeResourceNotFound, "Skill request not found")

	case errors.Is(err, apperrors.ErrReviewNotFound):
		respondError(c, 404, dto.ErrorCodeResourceNotFound, "Review not found")

	case errors.Is(err, apperrors.ErrChallengeNotFound):
		respondError(c, 404, dto.ErrorCodeResourceNotFound, "Challenge not found")

	case errors.Is(err, apperrors.ErrProfileNotFound):
		respondError(c, 404, dto.ErrorCodeResourceNotFound, "Profile not found")

	case errors.Is(err, apperrors.ErrSkillNotFound):
		respondError(c, 404, dto.ErrorCodeResourceNotFound, "Skill not found")

	case errors.Is(err, apperrors.ErrResourceNotFound):
		respondError(c, 404, dto.ErrorCodeResourceNotFound, "Resource not found")

	case errors.Is(err, apperrors.ErrInvalidTransition):
		respondError(c, 400, dto.ErrorCodeInvalidTransition, "Invalid match status transition")

	case errors.Is(err, apperrors.ErrDuplicateMatch):
		respondError(c, 400, dto.ErrorCodeDuplicateMatch, "An active match already exists for this teacher and skill")

	case errors.Is(err, apperrors.ErrMatchNotReviewable):
		respondError(c, 400, dto.ErrorCodeNotReviewable, "Match must be completed before it can be reviewed")

	case errors.Is(err, apperrors.ErrDuplicateReview):
		respondError(c, 409, dto.ErrorCodeResourceAlreadyExists, "You have already reviewed this match")

	case errors.Is(err, apperrors.ErrReviewEditsExceeded):
		respondError(c, 400, dto.ErrorCodeReviewEditsExceeded, "Review edit limit reached")

	case errors.Is(err, apperrors.ErrRequestNotOpen):
		respondError(c, 400, dto.ErrorCodeConflict, "Skill request is not open")

	case errors.Is(err, apperrors.ErrNotChallengeMember):
		respondError(c, 403, dto.ErrorCodeForbidden, "Join the challenge before recording progress")

	case errors.Is(err, apperrors.ErrProgressOutOfWindow):
		respondError(c, 400, dto.ErrorCodeValidationFailed, "Progress date is outside the challenge window")

	case errors.Is(err, apperrors.ErrConflict):
		respondError(c, 409, dto.ErrorCodeConflict, conflictMessage(err))

	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		respondError(c, 400, dto.ErrorCodeValidationFailed, validationMessage(err))

	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		respondError(c, 500, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

// respondError writes the error envelope and aborts the handler chain
func respondError(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.AbortWithStatusJSON(status, dto.APIResponse{
		Error:     dto.NewErrorDetail(code, message),
		Timestamp: time.Now(),
	})
}

// validationMessage surfaces the specific validation detail when one was
// attached via apperrors.NewValidationError.
func validationMessage(err error) string {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	return "Validation failed"
}

func conflictMessage(err error) string {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	return "Conflict"
}
