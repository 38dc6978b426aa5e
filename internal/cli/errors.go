package cli

import (
	"errors"

	"rnconfig/internal/validator"
)

// Exit codes.
const (
	ExitSuccess        = 0
	ExitInvalidConfig  = 1
	ExitUsageError     = 2
	ExitDiscoveryError = 3
)

// exitError carries the exit code chosen by a command handler.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

// runtimeError classifies an error returned by the resolution pipeline.
func runtimeError(err error) error {
	if err == nil {
		return nil
	}
	var cerr *validator.ConfigValidationError
	if errors.As(err, &cerr) {
		return &exitError{code: ExitInvalidConfig, err: err}
	}
	return &exitError{code: ExitDiscoveryError, err: err}
}

// exitCodeOf returns the exit code for an error returned by Execute. Errors
// not produced by a handler come from cobra itself: bad flags, arguments.
func exitCodeOf(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var xerr *exitError
	if errors.As(err, &xerr) {
		return xerr.code
	}
	return ExitUsageError
}
