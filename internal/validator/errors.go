package validator

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"rnconfig/internal/schema"
)

// ConfigValidationError is the translated form of a schema violation list.
// The same error is returned for the root project and logged for
// dependencies.
type ConfigValidationError struct {
	// Messages holds one rendered message per violation, in validator order.
	Messages []string

	cause *schema.ValidationError
}

// Error implements the error interface.
func (e *ConfigValidationError) Error() string {
	return strings.Join(e.Messages, ", ")
}

// Unwrap exposes the structured violations.
func (e *ConfigValidationError) Unwrap() error {
	if e.cause == nil {
		return nil
	}
	return e.cause
}

// Details returns the violations the message was rendered from.
func (e *ConfigValidationError) Details() []schema.Detail {
	if e.cause == nil {
		return nil
	}
	return e.cause.Details
}

// FormatDetail renders a single violation into a human-readable message.
func FormatDetail(d schema.Detail) string {
	name := d.Label()

	switch d.Type {
	case schema.TypeObjectUnknown:
		// Format: Unknown option {path} with value "{json}" was found. ...
		return fmt.Sprintf("Unknown option %s with value \"%s\" was found. "+
			"This is either a typing error or a user mistake. Fixing it will remove this message.",
			name, renderValue(d.Value))

	case schema.TypeObjectBase, schema.TypeStringBase, schema.TypeArrayBase,
		schema.TypeBooleanBase, schema.TypeNumberBase, schema.TypeFunctionBase:
		// Format: Option {path} must be a {expected}, instead got {actual}
		expected := strings.TrimSuffix(d.Type, ".base")
		return fmt.Sprintf("Option %s must be a %s, instead got %s", name, expected, typeOf(d.Value))
	}

	return d.Message
}

// FormatDetails renders every violation, preserving order.
func FormatDetails(details []schema.Detail) []string {
	messages := make([]string, len(details))
	for i, d := range details {
		messages[i] = FormatDetail(d)
	}
	return messages
}

func renderValue(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

// typeOf names a config value the way a JavaScript author would.
func typeOf(v any) string {
	if v == nil {
		return "null"
	}
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Func:
		return "function"
	}
	return fmt.Sprintf("%T", v)
}
