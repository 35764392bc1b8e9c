package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/bloglist-api/internal/api/shared"
	"github.com/phrazzld/bloglist-api/internal/domain"
	"github.com/phrazzld/bloglist-api/internal/service"
	"github.com/phrazzld/bloglist-api/internal/service/auth"
	"github.com/phrazzld/bloglist-api/internal/store"
)

// genericErrorMessage is sent for every error the API does not recognise.
const genericErrorMessage = "An unexpected error occurred"

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors

	switch {
	case err == nil:
		return http.StatusInternalServerError

	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrUnauthorized),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrNotOwned):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, shared.ErrInvalidRequestBody),
		errors.As(err, &validationErrs):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return genericErrorMessage
	}

	var validationErrs validator.ValidationErrors
	var fieldErr *domain.ValidationError

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrUnauthorized),
		errors.Is(err, auth.ErrMissingToken):
		return "Authentication required"

	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid username or password"

	// Authorization errors
	case errors.Is(err, service.ErrNotOwned):
		return "Only the creator can modify this blog"

	// Not found errors
	case errors.Is(err, store.ErrBlogNotFound):
		return "Blog not found"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	// Conflict errors
	case errors.Is(err, store.ErrUsernameExists):
		return "Username must be unique"

	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"

	// Bad request errors
	case errors.Is(err, domain.ErrInvalidID):
		return "malformatted id"

	case errors.Is(err, shared.ErrInvalidRequestBody):
		return "Invalid request format"

	case errors.As(err, &validationErrs):
		return SanitizeValidationError(validationErrs)

	case errors.As(err, &fieldErr):
		return SanitizeValidationError(fieldErr)

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, domain.ErrValidation):
		return "Validation failed"

	default:
		return genericErrorMessage
	}
}

// SanitizeValidationError turns validator and domain validation errors into
// a single client-facing sentence naming the first offending field.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		fe := validationErrs[0]
		return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag(), fe.Param()))
	}

	var fieldErr *domain.ValidationError
	if errors.As(err, &fieldErr) {
		return fmt.Sprintf("Invalid %s: %s", fieldErr.Field, fieldErr.Message)
	}

	return "Validation failed"
}

// getValidationTagMessage returns a user-friendly message for validation tags.
func getValidationTagMessage(tag, param string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return fmt.Sprintf("must be at least %s characters long", param)
	case "max":
		return fmt.Sprintf("must be at most %s characters long", param)
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", param)
	case "url":
		return "must be a valid URL"
	default:
		return "invalid value"
	}
}

// HandleAPIError writes the status and safe message for err and logs the
// redacted cause. Client errors are logged at DEBUG, except 401 and 403 which
// are raised to WARN; 5xx at ERROR.
//
// Its signature matches middleware.ErrorResponder.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)

	var opts []shared.ResponseOption
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		opts = append(opts, shared.WithElevatedLogLevel())
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}
