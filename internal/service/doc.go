// Package service holds the application use cases of the blog catalog:
// listing, creating, updating and deleting blogs with ownership checks,
// registering and listing users, and catalog statistics.
//
// Services depend on the interfaces in internal/store and never on a
// concrete database. They return sentinel errors (ErrNotOwned,
// ErrUnauthorized) or wrap domain and store errors with %w; mapping to HTTP
// status codes happens in internal/api.
package service
