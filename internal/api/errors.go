package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/youchat/youchat-api/internal/api/shared"
	"github.com/youchat/youchat-api/internal/domain"
	"github.com/youchat/youchat-api/internal/generation"
	"github.com/youchat/youchat-api/internal/platform/youtube"
	"github.com/youchat/youchat-api/internal/service"
	"github.com/youchat/youchat-api/internal/service/auth"
	"github.com/youchat/youchat-api/internal/store"
)

// MapErrorToStatusCode determines the HTTP status code for a given error.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrPasswordMismatch),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	case errors.Is(err, service.ErrSessionNotOwned):
		return http.StatusForbidden

	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrSessionNotFound),
		errors.Is(err, store.ErrTranscriptNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrEmailExists),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidVideoID),
		errors.Is(err, domain.ErrEmptyContent),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrPasswordTooShort),
		errors.Is(err, domain.ErrPasswordTooLong),
		errors.Is(err, domain.ErrEmptyMessageContent),
		errors.Is(err, service.ErrEmptyMessage),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, generation.ErrContentBlocked):
		return http.StatusBadRequest

	case isTranscriptFetchFailure(err):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}

// isTranscriptFetchFailure reports whether err means the video's transcript
// could not be retrieved from YouTube.
func isTranscriptFetchFailure(err error) bool {
	return errors.Is(err, youtube.ErrNoTranscript) ||
		errors.Is(err, youtube.ErrVideoUnavailable) ||
		errors.Is(err, service.ErrTranscriptFetch)
}

// GetSafeErrorMessage returns a message safe to expose to API clients.
// Internal errors are replaced with a generic message.
func GetSafeErrorMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrPasswordMismatch),
		errors.Is(err, store.ErrUserNotFound):
		// Do not reveal whether the email or the password was wrong.
		return "Invalid email or password"
	case errors.Is(err, store.ErrEmailExists):
		return "Email address is already registered"
	case errors.Is(err, store.ErrSessionNotFound):
		return "Session not found"
	case errors.Is(err, store.ErrTranscriptNotFound):
		return "Transcript not found"
	case errors.Is(err, domain.ErrInvalidVideoID):
		return "Invalid YouTube video ID"
	case errors.Is(err, service.ErrEmptyMessage):
		return "Message must not be empty"
	case errors.Is(err, generation.ErrContentBlocked):
		return "The request was blocked by content safety filters"
	case errors.Is(err, youtube.ErrNoTranscript):
		return "No transcript is available for this video"
	case errors.Is(err, youtube.ErrVideoUnavailable):
		return "The video is unavailable"
	case errors.Is(err, service.ErrTranscriptFetch):
		return "Failed to fetch the video transcript"
	case errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrExpiredRefreshToken):
		return "Token has expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid authentication token"
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}

	if MapErrorToStatusCode(err) == http.StatusInternalServerError {
		return "An internal error occurred"
	}
	return err.Error()
}

// SanitizeValidationError converts validator errors into a readable message
// without leaking struct internals.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return "Invalid request"
	}

	var problems []string
	for _, fieldErr := range validationErrs {
		field := strings.ToLower(fieldErr.Field())
		switch fieldErr.Tag() {
		case "required":
			problems = append(problems, field+" is required")
		case "email":
			problems = append(problems, field+" must be a valid email address")
		case "min":
			problems = append(problems, field+" must be at least "+fieldErr.Param()+" characters")
		case "max":
			problems = append(problems, field+" must be at most "+fieldErr.Param()+" characters")
		case "uuid":
			problems = append(problems, field+" must be a valid UUID")
		default:
			problems = append(problems, field+" is invalid")
		}
	}
	return strings.Join(problems, "; ")
}

// HandleAPIError maps err to a status code and safe message, logs the
// underlying error, and writes the response.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
}
