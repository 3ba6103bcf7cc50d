package store

import "errors"

var (
	// ErrStorageUnavailable is returned when the backing database cannot be
	// read or written. Callers surface a fallback state; it is never fatal.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrUploadFailed is returned when a cover image could not be uploaded
	// to blob storage. The document write is aborted.
	ErrUploadFailed = errors.New("cover upload failed")
	// ErrWriteFailed is returned when the remote document write fails after
	// any cover upload already succeeded.
	ErrWriteFailed = errors.New("document write failed")
)
