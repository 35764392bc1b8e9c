// Package api holds the HTTP handlers of the blog catalog. Handlers decode
// and validate request bodies, call the services and translate their errors
// into status codes and safe messages through HandleAPIError.
package api
