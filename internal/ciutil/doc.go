// Package ciutil detects CI environments and locates the database used by
// integration tests.
package ciutil
