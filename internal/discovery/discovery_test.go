package discovery

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"rnconfig/internal/rawconfig"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func search(t *testing.T, q Query, opts ...Option) rawconfig.Raw {
	t.Helper()
	raw, err := New(ModuleName, opts...).Search(context.Background(), q)
	require.NoError(t, err)
	return raw
}

func TestSearch_NotFound(t *testing.T) {
	dir := t.TempDir()

	raw := search(t, Query{Dir: dir, StopDir: dir})

	assert.False(t, raw.IsFound())
	assert.Empty(t, raw.Filepath())
}

func TestSearch_PackageJSONProperty(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "package.json", `{"name":"app","react-native":{"reactNativePath":"./rn"}}`)

	raw := search(t, Query{Dir: dir, StopDir: dir})

	require.True(t, raw.IsFound())
	assert.Equal(t, path, raw.Filepath())
	v, _ := raw.Value()
	assert.Equal(t, map[string]any{"reactNativePath": "./rn"}, v)
}

func TestSearch_PackageJSONWithoutPropertyIsSkipped(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{"name":"app"}`)
	path := writeFile(t, dir, ".react-nativerc.json", `{"assets":["./fonts"]}`)

	raw := search(t, Query{Dir: dir, StopDir: dir})

	require.True(t, raw.IsFound())
	assert.Equal(t, path, raw.Filepath())
}

func TestSearch_InvalidPackageJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{"name":`)

	_, err := New(ModuleName).Search(context.Background(), Query{Dir: dir, StopDir: dir})

	var lerr *LoadError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, filepath.Join(dir, "package.json"), lerr.Path)
}

func TestSearch_DataFormats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "extensionless rc is YAML", file: ".react-nativerc", content: "assets:\n  - ./fonts\n"},
		{name: "yaml", file: ".react-nativerc.yaml", content: "assets: [./fonts]\n"},
		{name: "yml under .config", file: ".config/react-nativerc.yml", content: "assets: [./fonts]\n"},
		{name: "toml", file: ".react-nativerc.toml", content: "assets = [\"./fonts\"]\n"},
		{name: "json", file: ".react-nativerc.json", content: `{"assets":["./fonts"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeFile(t, dir, tt.file, tt.content)

			raw := search(t, Query{Dir: dir, StopDir: dir})

			require.True(t, raw.IsFound())
			assert.Equal(t, path, raw.Filepath())
			v, _ := raw.Value()
			assert.Equal(t, map[string]any{"assets": []any{"./fonts"}}, v)
		})
	}
}

func TestSearch_EmptyFilesAreSkipped(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".react-nativerc", "  \n")
	writeFile(t, dir, ".react-nativerc.yaml", "# nothing yet\n")
	path := writeFile(t, dir, "react-native.config.js", `module.exports = {assets: []};`)

	raw := search(t, Query{Dir: dir, StopDir: dir})

	require.True(t, raw.IsFound())
	assert.Equal(t, path, raw.Filepath())
}

func TestSearch_WalksUpToStopDir(t *testing.T) {
	root := t.TempDir()
	path := writeFile(t, root, "react-native.config.js", `module.exports = {};`)
	child := filepath.Join(root, "packages", "app")
	require.NoError(t, os.MkdirAll(child, 0o755))

	raw := search(t, Query{Dir: child, StopDir: root})
	require.True(t, raw.IsFound())
	assert.Equal(t, path, raw.Filepath())

	raw = search(t, Query{Dir: child, StopDir: child})
	assert.False(t, raw.IsFound())
}

func TestSearch_SearchPlacesOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{"react-native":{"assets":[]}}`)
	writeFile(t, dir, ".react-nativerc.json", `{"assets":[]}`)

	raw := search(t, Query{Dir: dir, StopDir: dir, SearchPlaces: DependencySearchPlaces()})
	assert.False(t, raw.IsFound())

	path := writeFile(t, dir, "react-native.config.mjs", `export default {commands: []};`)
	raw = search(t, Query{Dir: dir, StopDir: dir, SearchPlaces: DependencySearchPlaces()})
	require.True(t, raw.IsFound())
	assert.Equal(t, path, raw.Filepath())
}

func TestDependencySearchPlaces_ReturnsCopy(t *testing.T) {
	places := DependencySearchPlaces()
	places[0] = "mutated"

	assert.Equal(t, "react-native.config.js", DependencySearchPlaces()[0])
}

func TestDefaultSearchPlaces_Order(t *testing.T) {
	places := DefaultSearchPlaces("react-native")

	assert.Equal(t, "package.json", places[0])
	assert.Equal(t, ".react-nativerc", places[1])
	assert.Contains(t, places, ".config/react-nativerc.toml")
	assert.Equal(t, "react-native.config.cjs", places[len(places)-1])
}

func TestSearch_CustomLoader(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".react-nativerc.json", `ignored`)

	loader := func(_ context.Context, path string, _ []byte) (any, bool, error) {
		return map[string]any{"from": filepath.Base(path)}, true, nil
	}

	raw := search(t, Query{Dir: dir, StopDir: dir}, WithLoader(".json", loader))

	v, _ := raw.Value()
	assert.Equal(t, map[string]any{"from": ".react-nativerc.json"}, v)
}

func TestSearch_CanceledContext(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "react-native.config.js", `module.exports = {};`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(ModuleName).Search(ctx, Query{Dir: dir, StopDir: dir})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestLoaderFor(t *testing.T) {
	e := New(ModuleName)

	assert.NotNil(t, e.loaderFor("/x/.react-nativerc"))
	assert.NotNil(t, e.loaderFor("/x/.config/react-nativerc"))
	assert.NotNil(t, e.loaderFor("/x/react-native.config.ts"))
	assert.Nil(t, e.loaderFor("/x/react-native.config.coffee"))
}

func TestSearch_ScriptTimeout(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "react-native.config.js", `for (;;) {}`)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := New(ModuleName).Search(ctx, Query{Dir: dir, StopDir: dir})

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
