// Package app holds the configuration and wiring shared by the kdbuild and
// kdquery commands.
package app
