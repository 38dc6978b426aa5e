package userconfig

import (
	"fmt"
	"sync"

	"rnconfig/internal/schema"

	"github.com/go-viper/mapstructure/v2"
)

// emptyDependencyConfig means "this package declares no React Native
// integration".
func emptyDependencyConfig() map[string]any {
	return map[string]any{
		"dependency": map[string]any{
			"platforms": map[string]any{},
		},
		"commands":  []any{},
		"platforms": map[string]any{},
	}
}

var checkDefault = sync.OnceFunc(func() {
	res := DependencySchema().Validate(emptyDependencyConfig(), schema.Options{})
	if res.Err != nil {
		panic("userconfig: default dependency config does not validate: " + res.Err.Error())
	}
})

// DefaultDependencyConfig returns a fresh copy of the raw configuration used
// for a dependency that ships none. It always passes DependencySchema.
func DefaultDependencyConfig() map[string]any {
	checkDefault()
	return emptyDependencyConfig()
}

// Decode converts a schema-coerced tree into T.
func Decode[T any](value any) (T, error) {
	var out T
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &out,
		TagName: "mapstructure",
		// keys the schema lets through must not land on a differently
		// cased typed field
		MatchName: func(mapKey, fieldName string) bool { return mapKey == fieldName },
	})
	if err != nil {
		return out, fmt.Errorf("creating decoder: %w", err)
	}
	if err := dec.Decode(value); err != nil {
		return out, fmt.Errorf("decoding config: %w", err)
	}
	return out, nil
}
