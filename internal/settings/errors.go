package settings

import "errors"

// Validation errors returned by Settings.validate.
var (
	// ErrInvalidOutput indicates an output format other than json or yaml.
	ErrInvalidOutput = errors.New("invalid output format")
	// ErrInvalidLogFormat indicates a log format other than console or json.
	ErrInvalidLogFormat = errors.New("invalid log format")
	// ErrInvalidTimeout indicates a non-positive resolution timeout.
	ErrInvalidTimeout = errors.New("invalid timeout")
	// ErrInvalidConcurrency indicates fewer than one concurrent resolution.
	ErrInvalidConcurrency = errors.New("invalid concurrency")
)
