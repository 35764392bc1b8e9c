// Package middleware holds HTTP middleware and the request pipeline used by
// the router: trace IDs, bearer token extraction and user resolution.
package middleware
