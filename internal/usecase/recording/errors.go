package recording

import "errors"

var (
	ErrObjectNotFound = errors.New("storage: object not found")
	ErrBucketNotFound = errors.New("storage: bucket not found")
	ErrUnauthorized   = errors.New("storage: unauthorized")
	ErrInternal       = errors.New("storage: internal error")

	// ErrNotPending is returned when validation is requested for a
	// recording that already left the pending state.
	ErrNotPending = errors.New("recording is not awaiting validation")
	// ErrUploadRejected is returned when a staged upload fails a gate
	// check. The recording is marked failed with the detailed reason.
	ErrUploadRejected = errors.New("upload rejected")
	// ErrNotValidated is returned when a download is requested for a
	// recording that has no finalised file yet.
	ErrNotValidated = errors.New("recording has not been validated")
)
