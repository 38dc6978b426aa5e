// Package project finds the packages a React Native project depends on and
// where they are installed.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
)

var (
	// ErrNoPackageJSON is returned when the project root has no package.json.
	ErrNoPackageJSON = errors.New("package.json not found")
	// ErrInvalidPackageJSON is returned when package.json is not valid JSON.
	ErrInvalidPackageJSON = errors.New("invalid package.json")
	// ErrModuleNotFound is returned when a package is not installed.
	ErrModuleNotFound = errors.New("module not found")
)

// Dependency is a package declared by the project.
type Dependency struct {
	Name string

	// Root is the installed package directory, or "" when not installed.
	Root string
}

// Installed reports whether the package was found in node_modules.
func (d Dependency) Installed() bool {
	return d.Root != ""
}

// DependencyNames returns the keys of dependencies and devDependencies in
// package.json, in file order, without duplicates.
func DependencyNames(root string) ([]string, error) {
	content, err := os.ReadFile(filepath.Join(root, "package.json"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w in %s", ErrNoPackageJSON, root)
		}
		return nil, fmt.Errorf("reading package.json: %w", err)
	}
	if !gjson.ValidBytes(content) {
		return nil, fmt.Errorf("%w in %s", ErrInvalidPackageJSON, root)
	}

	seen := map[string]bool{}
	var names []string
	for _, field := range []string{"dependencies", "devDependencies"} {
		gjson.GetBytes(content, field).ForEach(func(key, _ gjson.Result) bool {
			if name := key.String(); !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
			return true
		})
	}
	return names, nil
}

// ModuleDir finds the directory of the installed package name, looking in
// node_modules of root and then of every parent directory.
func ModuleDir(root, name string) (string, error) {
	dir, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving root: %w", err)
	}

	for {
		candidate := filepath.Join(dir, "node_modules", filepath.FromSlash(name))
		if info, err := os.Stat(filepath.Join(candidate, "package.json")); err == nil && !info.IsDir() {
			if real, err := filepath.EvalSymlinks(candidate); err == nil {
				return real, nil
			}
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: %s", ErrModuleNotFound, name)
		}
		dir = parent
	}
}

// Dependencies lists the declared dependencies of the project at root with
// their install locations.
func Dependencies(root string) ([]Dependency, error) {
	names, err := DependencyNames(root)
	if err != nil {
		return nil, err
	}

	deps := make([]Dependency, 0, len(names))
	for _, name := range names {
		dir, err := ModuleDir(root, name)
		if err != nil && !errors.Is(err, ErrModuleNotFound) {
			return nil, err
		}
		deps = append(deps, Dependency{Name: name, Root: dir})
	}
	return deps, nil
}
