package cli

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"rnconfig/internal/project"
	"rnconfig/internal/resolver"
	"rnconfig/internal/userconfig"

	"golang.org/x/sync/errgroup"
)

// resolvedProject is what the config command prints.
type resolvedProject struct {
	Root         string                        `json:"root" yaml:"root"`
	Project      userconfig.UserConfig         `json:"project" yaml:"project"`
	Dependencies map[string]resolvedDependency `json:"dependencies" yaml:"dependencies"`
}

type resolvedDependency struct {
	Root   string                          `json:"root" yaml:"root"`
	Config userconfig.UserDependencyConfig `json:"config" yaml:"config"`
}

// resolveProject resolves the root configuration and the configuration of
// every installed dependency concurrently. The first discovery or root
// validation failure cancels the rest.
func (a *app) resolveProject(ctx context.Context, r *resolver.Resolver) (resolvedProject, error) {
	ctx, cancel := context.WithTimeout(ctx, a.settings.Timeout)
	defer cancel()

	out := resolvedProject{
		Root:         a.root,
		Dependencies: map[string]resolvedDependency{},
	}

	deps, err := project.Dependencies(a.root)
	switch {
	case errors.Is(err, project.ErrNoPackageJSON):
		a.log.Debug().Str("root", a.root).Msg("no package.json, skipping dependencies")
	case err != nil:
		return resolvedProject{}, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.settings.Concurrency)

	g.Go(func() error {
		cfg, err := r.Root(gctx, a.root)
		if err != nil {
			return err
		}
		out.Project = cfg
		return nil
	})

	var mu sync.Mutex
	for _, dep := range deps {
		if !dep.Installed() {
			a.log.Debug().Str("dependency", dep.Name).Msg("not installed, skipping")
			continue
		}
		dep := dep
		g.Go(func() error {
			cfg, err := r.Dependency(gctx, dep.Root, dep.Name)
			if err != nil {
				return err
			}
			mu.Lock()
			out.Dependencies[dep.Name] = resolvedDependency{Root: dep.Root, Config: cfg}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return resolvedProject{}, err
	}
	return out, nil
}

// resolveDependency resolves the dependency name as installed for the
// project.
func (a *app) resolveDependency(ctx context.Context, r *resolver.Resolver, name string) (resolvedDependency, error) {
	ctx, cancel := context.WithTimeout(ctx, a.settings.Timeout)
	defer cancel()

	dir, err := project.ModuleDir(a.root, name)
	if err != nil {
		return resolvedDependency{}, fmt.Errorf("locating %s: %w", name, err)
	}

	cfg, err := r.Dependency(ctx, dir, name)
	if err != nil {
		return resolvedDependency{}, err
	}
	return resolvedDependency{Root: dir, Config: cfg}, nil
}
