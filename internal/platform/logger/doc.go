// Package logger provides structured logging functionality for the application.
//
// It utilizes Go's standard library log/slog package to implement structured JSON logging
// with configurable log levels, and carries request-scoped loggers through context.Context
// so that trace IDs set by the HTTP middleware follow a request into the service and
// store layers.
package logger
