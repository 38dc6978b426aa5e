package schema

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// state accumulates violations for one validation run.
type state struct {
	opts    Options
	details []Detail
}

func (st *state) report(d Detail) {
	st.details = append(st.details, d)
}

// halted reports whether validation must stop because of AbortEarly.
func (st *state) halted() bool {
	return st.opts.AbortEarly && len(st.details) > 0
}

// Validate checks value against the schema and returns the coerced value.
// Pass Missing to validate an absent value. The input is never mutated.
func (s *Schema) Validate(value any, opts Options) Result {
	st := &state{opts: opts}
	out, keep := s.validate(st, nil, value)
	if !keep {
		out = nil
	}
	res := Result{Value: out}
	if len(st.details) > 0 {
		res.Err = &ValidationError{Details: st.details}
	}
	return res
}

// validate returns the coerced value and whether it should be kept in its
// parent container.
func (s *Schema) validate(st *state, path []string, v any) (any, bool) {
	if _, ok := v.(missing); ok {
		return s.absent(st, path)
	}

	if v == nil && (s.allowNull || s.kind == KindAny) {
		return nil, true
	}

	if len(s.valid) > 0 {
		for _, allowed := range s.valid {
			if reflect.DeepEqual(allowed, v) {
				return v, true
			}
		}
		st.report(newDetail(path, TypeOnly, v, "must be one of %s", formatValid(s.valid)))
		return s.fallback(path)
	}

	switch s.kind {
	case KindAny:
		return v, true
	case KindString:
		if str, ok := v.(string); ok {
			return str, true
		}
	case KindBoolean:
		if b, ok := toBool(v); ok {
			return b, true
		}
	case KindNumber:
		if n, ok := toNumber(v); ok {
			return n, true
		}
	case KindFunction:
		if v != nil && reflect.TypeOf(v).Kind() == reflect.Func {
			return v, true
		}
	case KindArray:
		if arr, ok := v.([]any); ok {
			return s.validateArray(st, path, arr)
		}
	case KindObject:
		if m, ok := v.(map[string]any); ok {
			return s.validateObject(st, path, m)
		}
	case KindAlternatives:
		return s.validateAlternatives(st, path, v)
	}

	st.report(baseDetail(path, s.kind, v))
	return s.fallback(path)
}

// absent resolves a missing value.
func (s *Schema) absent(st *state, path []string) (any, bool) {
	switch {
	case s.required:
		st.report(newDetail(path, TypeRequired, nil, "is required"))
		return nil, false
	case s.hasDefault:
		return deepCopy(s.defaultValue), true
	case s.defaultFromKeys && s.kind == KindObject:
		return s.validateObject(st, path, map[string]any{})
	default:
		return nil, false
	}
}

// fallback is the best-effort value substituted for an invalid node. The node
// has already been reported, so violations met while building an object from
// its key defaults are discarded.
func (s *Schema) fallback(path []string) (any, bool) {
	switch {
	case s.hasDefault:
		return deepCopy(s.defaultValue), true
	case s.defaultFromKeys && s.kind == KindObject:
		return s.validateObject(&state{}, path, map[string]any{})
	default:
		return nil, false
	}
}

func (s *Schema) validateArray(st *state, path []string, arr []any) (any, bool) {
	out := make([]any, 0, len(arr))
	for i, item := range arr {
		if st.halted() {
			break
		}
		if s.items == nil {
			out = append(out, deepCopy(item))
			continue
		}
		v, keep := s.items.validate(st, appendPath(path, strconv.Itoa(i)), item)
		if keep {
			out = append(out, v)
		}
	}
	return out, true
}

func (s *Schema) validateObject(st *state, path []string, m map[string]any) (any, bool) {
	out := make(map[string]any, len(m))
	declared := make(map[string]struct{}, len(s.keys))

	for _, f := range s.keys {
		declared[f.Name] = struct{}{}
		if st.halted() {
			break
		}
		raw, ok := m[f.Name]
		if !ok {
			raw = Missing
		}
		if v, keep := f.Schema.validate(st, appendPath(path, f.Name), raw); keep {
			out[f.Name] = v
		}
	}

	extra := make([]string, 0, len(m))
	for k := range m {
		if _, ok := declared[k]; !ok {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)

	for _, k := range extra {
		if st.halted() {
			break
		}
		switch {
		case s.pattern != nil:
			if v, keep := s.pattern.validate(st, appendPath(path, k), m[k]); keep {
				out[k] = v
			}
		case s.unknown:
			out[k] = deepCopy(m[k])
		default:
			st.report(newDetail(appendPath(path, k), TypeObjectUnknown, m[k], "is not allowed"))
		}
	}

	return out, true
}

func (s *Schema) validateAlternatives(st *state, path []string, v any) (any, bool) {
	for _, alt := range s.alternatives {
		trial := &state{opts: Options{AbortEarly: true}}
		out, keep := alt.validate(trial, path, v)
		if len(trial.details) == 0 {
			return out, keep
		}
	}
	st.report(newDetail(path, TypeAlternativesAny, v, "does not match any of the allowed types"))
	return s.fallback(path)
}

func appendPath(path []string, elem string) []string {
	next := make([]string, len(path)+1)
	copy(next, path)
	next[len(path)] = elem
	return next
}

func toBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	return false, false
}

func toNumber(v any) (any, bool) {
	if v == nil {
		return nil, false
	}
	if s, ok := v.(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, false
		}
		return f, true
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return v, true
	}
	return nil, false
}

func formatValid(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// deepCopy copies the map and slice spine of a config tree. Leaves are
// shared; they are immutable scalars or callables.
func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = deepCopy(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = deepCopy(val)
		}
		return out
	default:
		return v
	}
}
