// Package config loads server, database, auth and catalog settings from
// defaults, an optional config.yaml and BLOGLIST_ environment variables, and
// validates them before the server starts.
package config
