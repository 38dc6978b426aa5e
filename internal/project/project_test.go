package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDependencyNames(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package.json"), `{
  "name": "app",
  "dependencies": {"react-native": "0.76.0", "my-lib": "1.0.0"},
  "devDependencies": {"my-lib": "1.0.0", "@scope/tool": "2.0.0"}
}`)

	names, err := DependencyNames(root)

	require.NoError(t, err)
	assert.Equal(t, []string{"react-native", "my-lib", "@scope/tool"}, names)
}

func TestDependencyNames_Errors(t *testing.T) {
	_, err := DependencyNames(t.TempDir())
	assert.ErrorIs(t, err, ErrNoPackageJSON)

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package.json"), `{"dependencies":`)
	_, err = DependencyNames(root)
	assert.ErrorIs(t, err, ErrInvalidPackageJSON)
}

func TestModuleDir_WalksUp(t *testing.T) {
	workspace := t.TempDir()
	app := filepath.Join(workspace, "packages", "app")
	writeFile(t, filepath.Join(app, "package.json"), `{}`)
	writeFile(t, filepath.Join(workspace, "node_modules", "@scope", "tool", "package.json"), `{}`)
	writeFile(t, filepath.Join(app, "node_modules", "local", "package.json"), `{}`)

	dir, err := ModuleDir(app, "@scope/tool")
	require.NoError(t, err)
	want, _ := filepath.EvalSymlinks(filepath.Join(workspace, "node_modules", "@scope", "tool"))
	assert.Equal(t, want, dir)

	dir, err = ModuleDir(app, "local")
	require.NoError(t, err)
	want, _ = filepath.EvalSymlinks(filepath.Join(app, "node_modules", "local"))
	assert.Equal(t, want, dir)

	_, err = ModuleDir(app, "missing")
	assert.ErrorIs(t, err, ErrModuleNotFound)
}

func TestDependencies(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package.json"), `{"dependencies": {"a": "1", "b": "1"}}`)
	writeFile(t, filepath.Join(root, "node_modules", "a", "package.json"), `{}`)

	deps, err := Dependencies(root)

	require.NoError(t, err)
	require.Len(t, deps, 2)
	assert.Equal(t, "a", deps[0].Name)
	assert.True(t, deps[0].Installed())
	assert.Equal(t, "b", deps[1].Name)
	assert.False(t, deps[1].Installed())
}
