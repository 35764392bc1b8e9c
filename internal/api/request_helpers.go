package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/phrazzld/bloglist-api/internal/api/shared"
	"github.com/phrazzld/bloglist-api/internal/domain"
)

// getPathUUID extracts a UUID from the URL path parameters.
// A missing or unparsable value yields a validation error wrapping
// domain.ErrInvalidID.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrInvalidID)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// decodeAndValidate reads the JSON body into req and runs struct validation.
func decodeAndValidate(r *http.Request, req interface{}) error {
	if err := shared.DecodeJSON(r, req); err != nil {
		return err
	}
	return shared.ValidateRequest(req)
}
