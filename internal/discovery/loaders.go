package discovery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"rnconfig/internal/logger"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// Loader turns file content into a config tree. The boolean is false when
// the file declares nothing, in which case the search continues.
type Loader func(ctx context.Context, path string, content []byte) (any, bool, error)

var errInvalidJSON = errors.New("invalid JSON")

func defaultLoaders(moduleName string, log *logger.Logger) map[string]Loader {
	loadScript := scriptLoader(log)
	return map[string]Loader{
		"package.json": packageJSONLoader(moduleName),
		".json":        loadJSON,
		"":             loadYAML,
		".yaml":        loadYAML,
		".yml":         loadYAML,
		".toml":        loadTOML,
		".js":          loadScript,
		".cjs":         loadScript,
		".mjs":         loadScript,
		".ts":          loadScript,
	}
}

// packageJSONLoader reads the moduleName property of a package.json. A
// package.json without that property declares nothing.
func packageJSONLoader(moduleName string) Loader {
	key := gjson.Escape(moduleName)
	return func(_ context.Context, _ string, content []byte) (any, bool, error) {
		if !gjson.ValidBytes(content) {
			return nil, false, errInvalidJSON
		}
		res := gjson.GetBytes(content, key)
		if !res.Exists() {
			return nil, false, nil
		}
		return res.Value(), true, nil
	}
}

func loadJSON(_ context.Context, _ string, content []byte) (any, bool, error) {
	var v any
	if err := json.Unmarshal(content, &v); err != nil {
		return nil, false, fmt.Errorf("parsing JSON: %w", err)
	}
	return v, true, nil
}

func loadYAML(_ context.Context, _ string, content []byte) (any, bool, error) {
	var v any
	if err := yaml.Unmarshal(content, &v); err != nil {
		return nil, false, fmt.Errorf("parsing YAML: %w", err)
	}
	if v == nil {
		// comments only
		return nil, false, nil
	}
	return normalizeYAML(v), true, nil
}

func loadTOML(_ context.Context, _ string, content []byte) (any, bool, error) {
	var v map[string]any
	if err := toml.Unmarshal(content, &v); err != nil {
		return nil, false, fmt.Errorf("parsing TOML: %w", err)
	}
	return v, true, nil
}

// normalizeYAML rewrites mappings with non-string keys so every object in
// the tree is a map[string]any.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalizeYAML(val)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalizeYAML(val)
		}
		return out
	case []any:
		for i, val := range t {
			t[i] = normalizeYAML(val)
		}
		return t
	default:
		return v
	}
}
