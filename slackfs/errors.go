package slackfs

import "errors"

// Sentinel errors for package slackfs.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// ErrNotFound is returned when a collection or item key is absent from
	// the in-memory index. The bridge reports it as ENOENT.
	ErrNotFound = errors.New("no such file or directory")

	// ErrUploadFailed is returned by Release when the write-back upload did
	// not succeed. The buffered placeholder is left in place.
	ErrUploadFailed = errors.New("upload failed")
)
