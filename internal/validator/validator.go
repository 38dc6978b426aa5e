// Package validator turns structured schema violations into the single
// consolidated message shown to users.
package validator

import "rnconfig/internal/schema"

// Translate converts a validation error into a ConfigValidationError. It is
// pure: the same violations always produce the same message. A nil input
// yields nil.
func Translate(verr *schema.ValidationError) *ConfigValidationError {
	if verr == nil {
		return nil
	}
	return &ConfigValidationError{
		Messages: FormatDetails(verr.Details),
		cause:    verr,
	}
}
