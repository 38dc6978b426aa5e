package schema

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genTags produces arrays that mix valid strings with invalid numbers.
func genTags() gopter.Gen {
	return gen.SliceOf(gen.OneGenOf(
		gen.AlphaString().Map(func(s string) any { return s }),
		gen.IntRange(0, 9).Map(func(n int) any { return n }),
	))
}

// For any input, validating the coerced value a second time yields the same
// value, and valid inputs stay valid.
func TestProperty_ValidateIsIdempotent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("coerced value re-validates to itself", prop.ForAll(
		func(name string, tags []any, abortEarly bool) bool {
			raw := map[string]any{"name": name, "tags": tags}
			opts := Options{AbortEarly: abortEarly}

			first := testObject().Validate(raw, opts)
			if first.Err != nil && abortEarly {
				return true
			}
			second := testObject().Validate(first.Value, opts)
			if second.Err != nil {
				t.Logf("second pass failed: %v", second.Err)
				return false
			}
			return reflect.DeepEqual(first.Value, second.Value)
		},
		gen.AlphaString(),
		genTags(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

// For any input, every reported violation points at a tag the validator
// rejected, and collect-all mode reports one violation per invalid tag.
func TestProperty_CollectAllReportsEveryViolation(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("one detail per non-string tag", prop.ForAll(
		func(tags []any) bool {
			invalid := 0
			for _, tag := range tags {
				if _, ok := tag.(string); !ok {
					invalid++
				}
			}

			res := testObject().Validate(map[string]any{"name": "x", "tags": tags}, Options{})
			if invalid == 0 {
				return res.Err == nil
			}
			if res.Err == nil || len(res.Err.Details) != invalid {
				return false
			}
			return len(res.Value.(map[string]any)["tags"].([]any)) == len(tags)-invalid
		},
		genTags(),
	))

	properties.TestingRun(t)
}
