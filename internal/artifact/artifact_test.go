package artifact

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"rnconfig/internal/rawconfig"
	"rnconfig/internal/userconfig"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sha256HashPattern matches a valid sha256: prefixed hex string
var sha256HashPattern = regexp.MustCompile(`^sha256:[a-f0-9]{64}$`)

func TestGenerate_FlattensResolvedConfig(t *testing.T) {
	cfg := userconfig.UserConfig{
		Project: userconfig.ProjectConfig{
			IOS: &userconfig.IOSProjectParams{SourceDir: "ios"},
		},
		Assets: []string{"./fonts"},
		Commands: []userconfig.Command{
			{Name: "hello", Func: func(...any) (any, error) { return nil, nil }},
		},
		Platforms:    map[string]userconfig.PlatformConfig{},
		Dependencies: map[string]userconfig.DependencyOverride{},
	}

	a, err := Generate(cfg)

	require.NoError(t, err)
	assert.Equal(t, "ios", a.Values["project.ios.sourceDir"])
	assert.Equal(t, "./fonts", a.Values["assets.0"])
	assert.Equal(t, "hello", a.Values["commands.0.name"])
	assert.Equal(t, "[Function]", a.Values["commands.0.func"])
	assert.Equal(t, "{}", a.Values["platforms"])
	assert.Regexp(t, sha256HashPattern, a.ConfigVersion)
}

func TestGenerate_Scalars(t *testing.T) {
	a, err := Generate(map[string]any{
		"flag":  true,
		"count": 3,
		"none":  nil,
		"list":  []any{},
		"fn":    rawconfig.Func(nil),
	})

	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"flag":  "true",
		"count": "3",
		"none":  "null",
		"list":  "[]",
		"fn":    "null",
	}, a.Values)
}

func TestGenerate_Unserializable(t *testing.T) {
	_, err := Generate(map[string]any{"ch": make(chan int)})
	assert.Error(t, err)
}

func TestWriteToFile(t *testing.T) {
	a, err := Generate(map[string]any{"a": "b"})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "nested", "config.json")
	require.NoError(t, a.WriteToFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var parsed ConfigArtifact
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, a, parsed)
}

// genValues generates a flat map of string values.
func genValues() gopter.Gen {
	return gen.MapOf(gen.Identifier(), gen.AlphaString())
}

func TestGenerate_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("flat string maps snapshot to themselves", prop.ForAll(
		func(values map[string]string) bool {
			a, err := Generate(values)
			if err != nil || len(a.Values) != len(values) {
				return false
			}
			for k, v := range values {
				if a.Values[k] != v {
					return false
				}
			}
			return sha256HashPattern.MatchString(a.ConfigVersion)
		},
		genValues(),
	))

	properties.Property("nesting under a key prefixes every path", prop.ForAll(
		func(values map[string]string) bool {
			if len(values) == 0 {
				return true
			}
			a, err := Generate(map[string]any{"project": values})
			if err != nil {
				return false
			}
			for k := range values {
				if _, ok := a.Values["project."+k]; !ok {
					return false
				}
			}
			return true
		},
		genValues(),
	))

	properties.TestingRun(t)
}

func TestCanonicalJSONDeterminism_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("canonical JSON has no whitespace", prop.ForAll(
		func(values map[string]string) bool {
			a := ConfigArtifact{ConfigVersion: ComputeConfigVersion(values), Values: values}
			str := string(a.ToCanonicalJSON())
			return !strings.Contains(str, ": ") && !strings.Contains(str, ", ") &&
				!strings.Contains(str, "\n") && !strings.Contains(str, "\t")
		},
		genValues(),
	))

	properties.Property("same artifact produces identical canonical JSON", prop.ForAll(
		func(values map[string]string) bool {
			a := ConfigArtifact{ConfigVersion: ComputeConfigVersion(values), Values: values}
			return string(a.ToCanonicalJSON()) == string(a.ToCanonicalJSON())
		},
		genValues(),
	))

	properties.Property("canonical JSON is valid JSON", prop.ForAll(
		func(values map[string]string) bool {
			a := ConfigArtifact{ConfigVersion: ComputeConfigVersion(values), Values: values}
			var parsed ConfigArtifact
			return json.Unmarshal(a.ToCanonicalJSON(), &parsed) == nil
		},
		genValues(),
	))

	properties.TestingRun(t)
}

func TestConfigHashUniqueness_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("different values produce different hashes", prop.ForAll(
		func(values map[string]string, key string, value1 string, value2 string) bool {
			if value1 == value2 {
				return true
			}

			values1 := make(map[string]string)
			values2 := make(map[string]string)
			for k, v := range values {
				values1[k] = v
				values2[k] = v
			}
			values1[key] = value1
			values2[key] = value2

			return ComputeConfigVersion(values1) != ComputeConfigVersion(values2)
		},
		genValues(),
		gen.Identifier(),
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.Property("adding a key changes the hash", prop.ForAll(
		func(values map[string]string, newKey string, newValue string) bool {
			if _, exists := values[newKey]; exists {
				return true
			}

			hash1 := ComputeConfigVersion(values)

			values2 := make(map[string]string)
			for k, v := range values {
				values2[k] = v
			}
			values2[newKey] = newValue

			return hash1 != ComputeConfigVersion(values2)
		},
		genValues(),
		gen.Identifier(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
