package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrValidation is returned when request input is missing or malformed.
	// It is usually wrapped with a message naming the offending field.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthenticated is returned when no valid session token was presented.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrInvalidCredentials is returned when username or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrForbidden is returned when the caller's role or ownership does not allow the action.
	ErrForbidden = errors.New("permission denied")
	// ErrHomeworkNotFound is returned when a homework is not found.
	ErrHomeworkNotFound = errors.New("homework not found")
	// ErrSubmissionNotFound is returned when a submission is not found.
	ErrSubmissionNotFound = errors.New("submission not found")
	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrFeedbackExists is returned when a submission already has feedback.
	ErrFeedbackExists = errors.New("submission already has feedback")
	// ErrItemAlreadyOwned is returned when buying an item the student already owns.
	ErrItemAlreadyOwned = errors.New("item already owned")
	// ErrInsufficientStars is returned when the star balance cannot cover a purchase.
	ErrInsufficientStars = errors.New("not enough stars")
	// ErrItemNotOwned is returned when placing an item that was never bought.
	ErrItemNotOwned = errors.New("item must be purchased first")
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
// Validation errors keep their wrapped message so the client sees which field failed.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
	case errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, ErrUnauthenticated.Error(), "UNAUTHENTICATED")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, ErrForbidden.Error(), "FORBIDDEN")
	case errors.Is(err, ErrHomeworkNotFound):
		return NewHTTPError(http.StatusNotFound, ErrHomeworkNotFound.Error(), "HOMEWORK_NOT_FOUND")
	case errors.Is(err, ErrSubmissionNotFound):
		return NewHTTPError(http.StatusNotFound, ErrSubmissionNotFound.Error(), "SUBMISSION_NOT_FOUND")
	case errors.Is(err, ErrUsernameTaken):
		return NewHTTPError(http.StatusConflict, ErrUsernameTaken.Error(), "USERNAME_TAKEN")
	case errors.Is(err, ErrFeedbackExists):
		return NewHTTPError(http.StatusConflict, ErrFeedbackExists.Error(), "FEEDBACK_EXISTS")
	case errors.Is(err, ErrItemAlreadyOwned):
		return NewHTTPError(http.StatusBadRequest, ErrItemAlreadyOwned.Error(), "ITEM_ALREADY_OWNED")
	case errors.Is(err, ErrInsufficientStars):
		return NewHTTPError(http.StatusBadRequest, ErrInsufficientStars.Error(), "INSUFFICIENT_STARS")
	case errors.Is(err, ErrItemNotOwned):
		return NewHTTPError(http.StatusBadRequest, ErrItemNotOwned.Error(), "ITEM_NOT_OWNED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}

// IsInternal reports whether err maps to a 500.
func IsInternal(err error) bool {
	return MapErrorToHTTP(err).StatusCode == http.StatusInternalServerError
}
