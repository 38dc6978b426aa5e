package schema

import (
	"fmt"
	"strings"
)

// Violation types, named after the constraint that failed.
const (
	TypeRequired        = "any.required"
	TypeOnly            = "any.only"
	TypeStringBase      = "string.base"
	TypeBooleanBase     = "boolean.base"
	TypeNumberBase      = "number.base"
	TypeFunctionBase    = "function.base"
	TypeArrayBase       = "array.base"
	TypeObjectBase      = "object.base"
	TypeObjectUnknown   = "object.unknown"
	TypeAlternativesAny = "alternatives.match"
)

// Detail is a single constraint violation.
type Detail struct {
	// Path locates the value inside the config tree. Array indices are
	// rendered as decimal strings.
	Path []string

	// Type names the violated constraint, e.g. "array.base".
	Type string

	// Message is a one-line description.
	Message string

	// Value is the offending value (nil when missing).
	Value any
}

// Label renders the path in dot notation, or "value" at the root.
func (d Detail) Label() string {
	return label(d.Path)
}

// ValidationError lists every violation found, in traversal order.
type ValidationError struct {
	Details []Detail
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e == nil || len(e.Details) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, len(e.Details))
	for i, d := range e.Details {
		msgs[i] = d.Message
	}
	return strings.Join(msgs, ". ")
}

func label(path []string) string {
	if len(path) == 0 {
		return "value"
	}
	return strings.Join(path, ".")
}

func newDetail(path []string, typ string, value any, format string, args ...any) Detail {
	return Detail{
		Path:    append([]string(nil), path...),
		Type:    typ,
		Message: fmt.Sprintf("%q ", label(path)) + fmt.Sprintf(format, args...),
		Value:   value,
	}
}

func baseDetail(path []string, kind Kind, value any) Detail {
	switch kind {
	case KindString:
		return newDetail(path, TypeStringBase, value, "must be a string")
	case KindBoolean:
		return newDetail(path, TypeBooleanBase, value, "must be a boolean")
	case KindNumber:
		return newDetail(path, TypeNumberBase, value, "must be a number")
	case KindFunction:
		return newDetail(path, TypeFunctionBase, value, "must be of type function")
	case KindArray:
		return newDetail(path, TypeArrayBase, value, "must be an array")
	default:
		return newDetail(path, TypeObjectBase, value, "must be of type object")
	}
}
