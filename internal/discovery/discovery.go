// Package discovery locates and loads configuration sources.
//
// An Explorer walks from a starting directory up to a stop directory and, in
// each directory, tries a list of candidate file names ("search places") in
// order. The first candidate that exists and has content is loaded with the
// loader registered for its extension and returned as a rawconfig.Raw.
//
// Supported formats: package.json property, JSON, YAML, TOML, and
// JavaScript/TypeScript config scripts (CommonJS, ES modules and TS).
package discovery

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"rnconfig/internal/logger"
	"rnconfig/internal/rawconfig"
)

// ModuleName is the configuration namespace searched for by default.
const ModuleName = "react-native"

// dependencySearchPlaces are the only file names a dependency may use: one
// per module-loading convention.
var dependencySearchPlaces = []string{
	"react-native.config.js",
	"react-native.config.ts",
	"react-native.config.mjs",
}

// DependencySearchPlaces returns the restricted search places used for
// dependencies.
func DependencySearchPlaces() []string {
	return append([]string(nil), dependencySearchPlaces...)
}

// DefaultSearchPlaces returns the full search-place set for moduleName in
// lookup order.
func DefaultSearchPlaces(moduleName string) []string {
	places := []string{"package.json"}
	for _, rc := range []string{"." + moduleName + "rc", ".config/" + moduleName + "rc"} {
		places = append(places,
			rc,
			rc+".json",
			rc+".yaml",
			rc+".yml",
			rc+".toml",
			rc+".js",
			rc+".ts",
			rc+".mjs",
			rc+".cjs",
		)
	}
	for _, ext := range []string{".js", ".ts", ".mjs", ".cjs"} {
		places = append(places, moduleName+".config"+ext)
	}
	return places
}

// Query describes one search.
type Query struct {
	// Dir is where the search starts.
	Dir string

	// StopDir is the last directory searched. Empty means the file system
	// root.
	StopDir string

	// SearchPlaces overrides the explorer's search places when non-nil.
	SearchPlaces []string
}

// LoadError reports a configuration source that exists but could not be
// read, parsed or executed.
type LoadError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("loading config %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// ErrNoLoader is wrapped in a LoadError when no loader handles a file.
var ErrNoLoader = errors.New("no loader registered")

// Explorer searches for configuration sources. It holds no per-search state
// and is safe for concurrent use.
type Explorer struct {
	moduleName   string
	searchPlaces []string
	loaders      map[string]Loader
	custom       map[string]Loader
	log          *logger.Logger
}

// Option configures an Explorer.
type Option func(*Explorer)

// WithSearchPlaces replaces the default search places.
func WithSearchPlaces(places []string) Option {
	return func(e *Explorer) {
		e.searchPlaces = append([]string(nil), places...)
	}
}

// WithLoader registers a loader for an extension (".json") or an exact base
// name ("package.json"). It overrides any built-in loader.
func WithLoader(key string, l Loader) Option {
	return func(e *Explorer) {
		e.custom[key] = l
	}
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(l *logger.Logger) Option {
	return func(e *Explorer) {
		if l != nil {
			e.log = l
		}
	}
}

// New creates an Explorer for moduleName with the default loaders and search
// places.
func New(moduleName string, opts ...Option) *Explorer {
	e := &Explorer{
		moduleName:   moduleName,
		searchPlaces: DefaultSearchPlaces(moduleName),
		custom:       map[string]Loader{},
		log:          logger.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.loaders = defaultLoaders(moduleName, e.log)
	maps.Copy(e.loaders, e.custom)
	return e
}

// Search returns the first configuration source found for q, or
// rawconfig.NotFound. Failures to load an existing source are returned as
// *LoadError and are never reported as not found.
func (e *Explorer) Search(ctx context.Context, q Query) (rawconfig.Raw, error) {
	dir, err := filepath.Abs(q.Dir)
	if err != nil {
		return rawconfig.NotFound(), fmt.Errorf("resolving search dir: %w", err)
	}

	stopDir := ""
	if q.StopDir != "" {
		if stopDir, err = filepath.Abs(q.StopDir); err != nil {
			return rawconfig.NotFound(), fmt.Errorf("resolving stop dir: %w", err)
		}
	}

	places := e.searchPlaces
	if q.SearchPlaces != nil {
		places = q.SearchPlaces
	}

	for {
		raw, found, err := e.searchDir(ctx, dir, places)
		if err != nil || found {
			return raw, err
		}

		parent := filepath.Dir(dir)
		if dir == stopDir || parent == dir {
			break
		}
		dir = parent
	}

	return rawconfig.NotFound(), nil
}

func (e *Explorer) searchDir(ctx context.Context, dir string, places []string) (rawconfig.Raw, bool, error) {
	for _, place := range places {
		if err := ctx.Err(); err != nil {
			return rawconfig.NotFound(), false, err
		}

		path := filepath.Join(dir, filepath.FromSlash(place))
		content, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) || isDir(path) {
				continue
			}
			return rawconfig.NotFound(), false, &LoadError{Path: path, Err: err}
		}

		if strings.TrimSpace(string(content)) == "" {
			e.log.Debug().Str("path", path).Msg("skipping empty config source")
			continue
		}

		load := e.loaderFor(path)
		if load == nil {
			return rawconfig.NotFound(), false, &LoadError{Path: path, Err: ErrNoLoader}
		}

		value, ok, err := load(ctx, path, content)
		if err != nil {
			return rawconfig.NotFound(), false, &LoadError{Path: path, Err: err}
		}
		if !ok {
			e.log.Debug().Str("path", path).Msg("config source declares nothing")
			continue
		}

		e.log.Debug().Str("path", path).Msg("found config source")
		return rawconfig.Found(path, value), true, nil
	}
	return rawconfig.NotFound(), false, nil
}

func (e *Explorer) loaderFor(path string) Loader {
	base := filepath.Base(path)
	if l, ok := e.loaders[base]; ok {
		return l
	}
	ext := filepath.Ext(base)
	if ext == base {
		// dotfile without extension, e.g. ".react-nativerc"
		ext = ""
	}
	return e.loaders[ext]
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
