// Package artifact produces a flat, hashable snapshot of resolved
// configuration. Nested keys are joined with dots ("project.ios.sourceDir"),
// array indices become segments ("commands.0.name"), and the whole snapshot is
// identified by the sha256 of its canonical JSON.
package artifact

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/tidwall/gjson"
)

// ConfigArtifact is an immutable snapshot of resolved configuration.
type ConfigArtifact struct {
	ConfigVersion string            `json:"configVersion"` // sha256:hex
	Values        map[string]string `json:"values"`
}

// Generate snapshots v, which must be JSON-serializable. Callables appear as
// "[Function]".
func Generate(v any) (ConfigArtifact, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return ConfigArtifact{}, fmt.Errorf("serializing config: %w", err)
	}

	values := make(map[string]string)
	flatten("", gjson.ParseBytes(data), values)

	return ConfigArtifact{
		ConfigVersion: ComputeConfigVersion(values),
		Values:        values,
	}, nil
}

// flatten records every leaf of res under its dotted path. Empty objects and
// arrays are leaves so their presence is still visible.
func flatten(prefix string, res gjson.Result, out map[string]string) {
	join := func(key string) string {
		if prefix == "" {
			return key
		}
		return prefix + "." + key
	}

	switch {
	case res.IsObject():
		empty := true
		res.ForEach(func(key, val gjson.Result) bool {
			empty = false
			flatten(join(key.String()), val, out)
			return true
		})
		if empty && prefix != "" {
			out[prefix] = "{}"
		}
	case res.IsArray():
		items := res.Array()
		if len(items) == 0 && prefix != "" {
			out[prefix] = "[]"
		}
		for i, item := range items {
			flatten(join(strconv.Itoa(i)), item, out)
		}
	case res.Type == gjson.String:
		out[prefix] = res.String()
	default:
		out[prefix] = res.Raw
	}
}

// ComputeConfigVersion computes the SHA-256 hash of the values in canonical form.
// Returns the hash prefixed with "sha256:".
func ComputeConfigVersion(values map[string]string) string {
	canonical := canonicalValuesJSON(values)
	hash := sha256.Sum256(canonical)
	return "sha256:" + hex.EncodeToString(hash[:])
}

// ToCanonicalJSON serializes the artifact to canonical JSON (sorted keys, no whitespace).
func (a ConfigArtifact) ToCanonicalJSON() []byte {
	configVersionJSON, _ := json.Marshal(a.ConfigVersion)

	result := []byte(`{"configVersion":`)
	result = append(result, configVersionJSON...)
	result = append(result, `,"values":`...)
	result = append(result, canonicalValuesJSON(a.Values)...)
	result = append(result, '}')
	return result
}

// ToJSON serializes the artifact to pretty-printed JSON for human readability.
func (a ConfigArtifact) ToJSON() ([]byte, error) {
	return json.MarshalIndent(a, "", "  ")
}

// canonicalValuesJSON produces canonical JSON for just the values map.
func canonicalValuesJSON(values map[string]string) []byte {
	if len(values) == 0 {
		return []byte("{}")
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := []byte("{")
	for i, k := range keys {
		if i > 0 {
			result = append(result, ',')
		}
		keyJSON, _ := json.Marshal(k)
		valueJSON, _ := json.Marshal(values[k])
		result = append(result, keyJSON...)
		result = append(result, ':')
		result = append(result, valueJSON...)
	}
	result = append(result, '}')
	return result
}
