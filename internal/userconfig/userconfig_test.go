package userconfig

import (
	"encoding/json"
	"testing"

	"rnconfig/internal/rawconfig"
	"rnconfig/internal/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(...any) (any, error) { return nil, nil }

func TestDefaultDependencyConfig_Validates(t *testing.T) {
	res := DependencySchema().Validate(DefaultDependencyConfig(), schema.Options{})

	require.Nil(t, res.Err)
	assert.Equal(t, map[string]any{
		"dependency": map[string]any{"platforms": map[string]any{}},
		"commands":   []any{},
		"platforms":  map[string]any{},
	}, res.Value)
}

func TestDefaultDependencyConfig_FreshCopies(t *testing.T) {
	first := DefaultDependencyConfig()
	first["commands"] = "mutated"

	assert.Equal(t, []any{}, DefaultDependencyConfig()["commands"])
}

func TestProjectSchema_MissingConfigUsesDefaults(t *testing.T) {
	res := ProjectSchema().Validate(schema.Missing, schema.DefaultOptions())

	require.Nil(t, res.Err)
	cfg, err := Decode[UserConfig](res.Value)
	require.NoError(t, err)
	assert.Empty(t, cfg.Commands)
	assert.NotNil(t, cfg.Project.IOS)
	assert.NotNil(t, cfg.Project.Android)
	assert.Empty(t, cfg.Dependencies)
}

func TestProjectSchema_KeepsProjectAndFillsDefaults(t *testing.T) {
	raw := map[string]any{"project": map[string]any{"ios": map[string]any{}}}

	res := ProjectSchema().Validate(raw, schema.DefaultOptions())

	require.Nil(t, res.Err)
	assert.Equal(t, map[string]any{
		"project": map[string]any{
			"ios":     map[string]any{},
			"android": map[string]any{},
		},
		"dependencies": map[string]any{},
		"assets":       []any{},
		"commands":     []any{},
		"platforms":    map[string]any{},
	}, res.Value)
}

func TestProjectSchema_RejectsNonObjectProject(t *testing.T) {
	res := ProjectSchema().Validate(map[string]any{"project": "ios"}, schema.DefaultOptions())

	require.NotNil(t, res.Err)
	assert.Equal(t, []string{"project"}, res.Err.Details[0].Path)
	assert.Equal(t, schema.TypeObjectBase, res.Err.Details[0].Type)
}

func TestDecode_DependencyConfig(t *testing.T) {
	raw := map[string]any{
		"dependency": map[string]any{
			"platforms": map[string]any{
				"android": map[string]any{
					"sourceDir":   "./android",
					"libraryName": nil,
				},
				"ios":     nil,
				"windows": map[string]any{"sln": "x.sln"},
			},
		},
		"commands": []any{
			map[string]any{
				"name": "run-thing",
				"func": rawconfig.Func(noop),
				"options": []any{
					map[string]any{"name": "--fast", "default": true},
				},
			},
		},
		"customKey": "kept",
	}

	res := DependencySchema().Validate(raw, schema.Options{})
	require.Nil(t, res.Err)

	cfg, err := Decode[UserDependencyConfig](res.Value)
	require.NoError(t, err)

	require.NotNil(t, cfg.Dependency.Platforms.Android)
	assert.Equal(t, "./android", cfg.Dependency.Platforms.Android.SourceDir)
	assert.Nil(t, cfg.Dependency.Platforms.Android.LibraryName)
	assert.Equal(t, []string{}, cfg.Dependency.Platforms.Android.BuildTypes)
	assert.Nil(t, cfg.Dependency.Platforms.IOS)
	assert.Equal(t, map[string]any{"windows": map[string]any{"sln": "x.sln"}}, cfg.Dependency.Platforms.Other)
	require.Len(t, cfg.Commands, 1)
	assert.Equal(t, "run-thing", cfg.Commands[0].Name)
	assert.NotNil(t, cfg.Commands[0].Func)
	assert.Equal(t, true, cfg.Commands[0].Options[0].Default)
	assert.Equal(t, map[string]any{"customKey": "kept"}, cfg.Extra)
}

func TestCommandFunc_MarshalsAsPlaceholder(t *testing.T) {
	cmd := Command{Name: "x", Func: rawconfig.Func(noop)}

	data, err := json.Marshal(cmd)

	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"x","func":"[Function]"}`, string(data))
}
