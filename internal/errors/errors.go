package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	// The same error covers unknown email and wrong password so callers
	// cannot probe which one failed.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken is returned when registering an already used email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidManagerRef is returned when manager_id does not reference a manager-role user.
	ErrInvalidManagerRef = errors.New("manager_id must reference an existing manager")
	// ErrInvalidRefreshToken is returned when a refresh token is invalid or expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	// ErrMissingFields is returned when required feedback fields are empty.
	ErrMissingFields = errors.New("all fields are required")
	// ErrUserNotFound is returned when a user lookup misses.
	ErrUserNotFound = errors.New("user not found")
	// ErrFeedbackNotFound is returned when a feedback lookup misses.
	ErrFeedbackNotFound = errors.New("feedback not found")
	// ErrNotAManager is returned when a manager-only action is attempted by an employee.
	ErrNotAManager = errors.New("only managers can perform this action")
	// ErrNotOnTeam is returned when the target employee is not a direct report of the caller.
	ErrNotOnTeam = errors.New("employee not in your team")
	// ErrNotFeedbackOwner is returned when a manager edits feedback authored by someone else.
	ErrNotFeedbackOwner = errors.New("feedback was authored by another manager")
	// ErrNotFeedbackSubject is returned when acknowledging feedback addressed to someone else.
	ErrNotFeedbackSubject = errors.New("feedback is addressed to another employee")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrInvalidCredentials:
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case ErrInvalidRefreshToken:
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_REFRESH_TOKEN")
	case ErrEmailTaken:
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case ErrInvalidManagerRef:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_MANAGER")
	case ErrMissingFields:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "MISSING_FIELDS")
	case ErrUserNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case ErrFeedbackNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "FEEDBACK_NOT_FOUND")
	case ErrNotAManager:
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_A_MANAGER")
	case ErrNotOnTeam:
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_ON_TEAM")
	case ErrNotFeedbackOwner:
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_FEEDBACK_OWNER")
	case ErrNotFeedbackSubject:
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_FEEDBACK_SUBJECT")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
