package schema

func newSchema(kind Kind) *Schema {
	return &Schema{kind: kind}
}

// Any accepts every present value.
func Any() *Schema { return newSchema(KindAny) }

// String accepts strings.
func String() *Schema { return newSchema(KindString) }

// Bool accepts booleans and the strings "true" and "false".
func Bool() *Schema { return newSchema(KindBoolean) }

// Number accepts integers, floats and numeric strings.
func Number() *Schema { return newSchema(KindNumber) }

// Func accepts callables.
func Func() *Schema { return newSchema(KindFunction) }

// Array accepts []any.
func Array() *Schema { return newSchema(KindArray) }

// Object accepts map[string]any. Unknown keys are rejected unless Unknown or
// Pattern says otherwise.
func Object() *Schema { return newSchema(KindObject) }

// Alternatives accepts a value matching at least one of the given schemas;
// the first match wins.
func Alternatives(options ...*Schema) *Schema {
	s := newSchema(KindAlternatives)
	s.alternatives = append([]*Schema(nil), options...)
	return s
}

func (s *Schema) clone() *Schema {
	c := *s
	c.valid = append([]any(nil), s.valid...)
	c.keys = append([]Field(nil), s.keys...)
	c.alternatives = append([]*Schema(nil), s.alternatives...)
	return &c
}

// Kind returns the structural type of the schema.
func (s *Schema) Kind() Kind { return s.kind }

// Required makes absence a violation.
func (s *Schema) Required() *Schema {
	c := s.clone()
	c.required = true
	return c
}

// AllowNull accepts an explicit nil in addition to the schema's type.
func (s *Schema) AllowNull() *Schema {
	c := s.clone()
	c.allowNull = true
	return c
}

// Default substitutes v (deep-copied) when the value is absent or invalid.
func (s *Schema) Default(v any) *Schema {
	c := s.clone()
	c.hasDefault = true
	c.defaultValue = v
	return c
}

// DefaultFromKeys makes an absent object default to the result of validating
// an empty object, so nested key defaults apply.
func (s *Schema) DefaultFromKeys() *Schema {
	c := s.clone()
	c.defaultFromKeys = true
	return c
}

// Valid restricts the value to the given literals.
func (s *Schema) Valid(values ...any) *Schema {
	c := s.clone()
	c.valid = append(c.valid, values...)
	return c
}

// Items sets the schema every array element must satisfy.
func (s *Schema) Items(item *Schema) *Schema {
	c := s.clone()
	c.items = item
	return c
}

// Keys declares object keys. Validation visits them in declaration order.
func (s *Schema) Keys(fields ...Field) *Schema {
	c := s.clone()
	c.keys = append(c.keys, fields...)
	return c
}

// Pattern sets the schema for object keys not declared with Keys.
func (s *Schema) Pattern(value *Schema) *Schema {
	c := s.clone()
	c.pattern = value
	return c
}

// Unknown controls whether undeclared object keys are kept as-is.
func (s *Schema) Unknown(allow bool) *Schema {
	c := s.clone()
	c.unknown = allow
	return c
}

// Field returns the schema declared for key, or nil.
func (s *Schema) Field(key string) *Schema {
	for _, f := range s.keys {
		if f.Name == key {
			return f.Schema
		}
	}
	return nil
}
