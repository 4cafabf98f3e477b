// Package util provides utility functions for the slackfs filesystem.
package util

import "errors"

// Sentinel errors for package util.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// Path errors
	ErrEmptyName    = errors.New("empty path component")
	ErrNameHasSlash = errors.New("path component contains a slash")
)
