package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrUnknownUser indicates a valid token names a user that does not exist
	ErrUnknownUser = errors.New("token user does not exist")

	// ErrUnauthorized is returned when an operation needs an authenticated user
	// and none could be established. It wraps ErrMissingToken or ErrUnknownUser.
	ErrUnauthorized = errors.New("authentication required")

	// ErrInvalidCredentials is returned by Authenticate for an unknown username
	// or a wrong password. The two cases are not distinguished.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
