// Package common defines shared constants and sentinel errors used across
// the inserter, the uploader and the emulator. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// ErrConfiguration is returned when the remote service rejects the
	// credentials or the endpoint is unusable.
	ErrConfiguration = errors.New("configuration error")

	// ErrRequestFailed covers GraphQL error payloads, transport failures and
	// responses that do not match the expected shape.
	ErrRequestFailed = errors.New("request failed")

	// ErrUploadFailed is returned when a file POST to a signed URL fails.
	ErrUploadFailed = errors.New("upload failed")

	// ErrLocalIO is returned when a local file cannot be stat-ed or read.
	ErrLocalIO = errors.New("local io failure")

	// Validation errors raised before anything is sent.
	ErrNoFiles           = errors.New("no files to upload")
	ErrDuplicateFileName = errors.New("duplicate file name")
)
