package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxRequestBodyBytes caps the size of JSON request bodies.
const MaxRequestBodyBytes = 1 << 20

// ErrInvalidRequestBody is returned by DecodeJSON for empty, oversized or
// malformed bodies.
var ErrInvalidRequestBody = errors.New("invalid request body")

// Global validator instance for reuse. Field names in errors are the json
// names clients send.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// DecodeJSON decodes the request body into the given struct.
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("%w: body is empty", ErrInvalidRequestBody)
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, MaxRequestBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: body is empty", ErrInvalidRequestBody)
		}
		return fmt.Errorf("%w: %v", ErrInvalidRequestBody, err)
	}
	return nil
}

// ValidateRequest validates the given struct using the validator package.
func ValidateRequest(v interface{}) error {
	if validator, ok := v.(interface{ Validate() error }); ok {
		return validator.Validate()
	}
	return validate.Struct(v)
}
