// Package rawconfig holds configuration values exactly as discovery produced
// them, before any schema validation.
package rawconfig

// Func is a callable exported by a configuration script.
type Func func(args ...any) (any, error)

const funcPlaceholder = "[Function]"

// MarshalJSON renders callables as a placeholder string.
func (f Func) MarshalJSON() ([]byte, error) {
	if f == nil {
		return []byte("null"), nil
	}
	return []byte(`"` + funcPlaceholder + `"`), nil
}

// MarshalYAML renders callables as a placeholder string.
func (f Func) MarshalYAML() (any, error) {
	if f == nil {
		return nil, nil
	}
	return funcPlaceholder, nil
}

// Raw is an unvalidated configuration value. The zero value means nothing
// was found.
type Raw struct {
	value    any
	filepath string
	found    bool
}

// Found wraps a value loaded from path. An empty map is still found.
func Found(path string, value any) Raw {
	return Raw{value: value, filepath: path, found: true}
}

// NotFound reports that no configuration source exists.
func NotFound() Raw {
	return Raw{}
}

// Value returns the loaded value and whether anything was found.
func (r Raw) Value() (any, bool) {
	return r.value, r.found
}

// IsFound reports whether a configuration source was found.
func (r Raw) IsFound() bool {
	return r.found
}

// Filepath returns the file the value was loaded from, or "" when not found.
func (r Raw) Filepath() string {
	return r.filepath
}
