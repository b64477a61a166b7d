package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrUnauthorized  = errors.New("authentication required")
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("invalid token")
	ErrInvalidFormat = errors.New("invalid token format")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Match errors
var (
	ErrMatchNotFound      = errors.New("match not found")
	ErrDuplicateMatch     = errors.New("an active match already exists for this learner, teacher and skill")
	ErrNotMatchParty      = errors.New("user is not a party to this match")
	ErrInvalidTransition  = errors.New("invalid match status transition")
	ErrMatchNotReviewable = errors.New("match must be completed before it can be reviewed")
)

// Skill request errors
var (
	ErrRequestNotFound = errors.New("skill request not found")
	ErrRequestNotOpen  = errors.New("skill request is not open")
	ErrRequestNotOwned = errors.New("skill request belongs to another user")
)

// Review errors
var (
	ErrReviewNotFound      = errors.New("review not found")
	ErrDuplicateReview     = errors.New("a review for this match already exists")
	ErrReviewEditsExceeded = errors.New("review edit limit reached")
)

// Profile errors
var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrSkillNotFound   = errors.New("skill not found")
)

// Challenge errors
var (
	ErrChallengeNotFound   = errors.New("challenge not found")
	ErrNotChallengeMember  = errors.New("user has not joined this challenge")
	ErrProgressOutOfWindow = errors.New("progress date is outside the challenge window")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewValidationError creates a new custom error for malformed input with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err       error
	Message   string
	StatusMsg string
	Code      string
	Details   map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}
