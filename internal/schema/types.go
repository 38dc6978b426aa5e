// Package schema validates and coerces untyped configuration trees against
// declarative structural contracts.
//
// Schemas are built from immutable combinators: every modifier returns a
// copy, so a schema value can be shared freely between goroutines.
//
//	s := schema.Object().Keys(
//		schema.Key("name", schema.String().Required()),
//		schema.Key("tags", schema.Array().Items(schema.String()).Default([]any{})),
//	)
//	res := s.Validate(raw, schema.DefaultOptions())
package schema

// Kind is the structural type a schema accepts.
type Kind string

const (
	KindAny          Kind = "any"
	KindString       Kind = "string"
	KindBoolean      Kind = "boolean"
	KindNumber       Kind = "number"
	KindFunction     Kind = "function"
	KindArray        Kind = "array"
	KindObject       Kind = "object"
	KindAlternatives Kind = "alternatives"
)

// Missing marks an absent value, as opposed to an explicit null.
var Missing = missing{}

type missing struct{}

// Options controls a single validation run.
type Options struct {
	// AbortEarly stops at the first violation instead of collecting all.
	AbortEarly bool
}

// DefaultOptions returns the options used when the caller has no preference.
func DefaultOptions() Options {
	return Options{AbortEarly: true}
}

// Result is the outcome of a validation run. Value is populated even when
// Err is set: invalid nodes are replaced by their default, or dropped.
type Result struct {
	Value any
	Err   *ValidationError
}

// Field is a named object key and the schema of its value.
type Field struct {
	Name   string
	Schema *Schema
}

// Key is shorthand for building a Field.
func Key(name string, s *Schema) Field {
	return Field{Name: name, Schema: s}
}

// Schema is an immutable structural contract.
type Schema struct {
	kind            Kind
	required        bool
	allowNull       bool
	hasDefault      bool
	defaultValue    any
	defaultFromKeys bool
	valid           []any
	items           *Schema
	keys            []Field
	pattern         *Schema
	unknown         bool
	alternatives    []*Schema
}
