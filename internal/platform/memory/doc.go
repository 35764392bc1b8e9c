// Package memory provides map-backed implementations of the store
// interfaces. Data lives for the lifetime of the process; it backs the
// "memory" database driver and tests.
package memory
