// Package resolver turns discovered configuration into typed configuration.
//
// The project's own configuration and the configuration shipped by each
// dependency go through the same pipeline: discover, validate, decode. They
// differ only in the Policy applied. A project is trusted, so a validation
// error fails the call. A dependency is not, so a validation error is sent to
// the Notifier and the best-effort value is returned.
package resolver

import (
	"context"
	"fmt"

	"rnconfig/internal/discovery"
	"rnconfig/internal/logger"
	"rnconfig/internal/schema"
	"rnconfig/internal/userconfig"
	"rnconfig/internal/validator"
)

// Resolver resolves root and dependency configuration. It is safe for
// concurrent use when its Discoverer and Notifier are.
type Resolver struct {
	discoverer Discoverer
	notifier   Notifier
	log        *logger.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for debug tracing.
func WithLogger(l *logger.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.log = l
		}
	}
}

// New creates a Resolver.
func New(d Discoverer, n Notifier, opts ...Option) *Resolver {
	r := &Resolver{
		discoverer: d,
		notifier:   n,
		log:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Root resolves the project configuration found from rootDir. A missing
// configuration yields the schema defaults. An invalid one yields a
// *validator.ConfigValidationError.
func (r *Resolver) Root(ctx context.Context, rootDir string) (userconfig.UserConfig, error) {
	cfg, err := resolve[userconfig.UserConfig](ctx, r, RootPolicy(), userconfig.ProjectSchema(), rootDir, "")
	if err != nil {
		return userconfig.UserConfig{}, fmt.Errorf("resolving project config in %s: %w", rootDir, err)
	}
	return cfg, nil
}

// Dependency resolves the configuration shipped by the package name installed
// at rootDir. Validation errors never fail the call. Only a discovery failure
// does.
func (r *Resolver) Dependency(ctx context.Context, rootDir, name string) (userconfig.UserDependencyConfig, error) {
	cfg, err := resolve[userconfig.UserDependencyConfig](ctx, r, DependencyPolicy(), userconfig.DependencySchema(), rootDir, name)
	if err != nil {
		return userconfig.UserDependencyConfig{}, fmt.Errorf("resolving config of dependency %s: %w", name, err)
	}
	return cfg, nil
}

// resolve is the single pipeline behind Root and Dependency.
func resolve[T any](ctx context.Context, r *Resolver, p Policy, s *schema.Schema, rootDir, name string) (T, error) {
	var zero T

	raw, err := r.discoverer.Search(ctx, discovery.Query{
		Dir:          rootDir,
		StopDir:      rootDir,
		SearchPlaces: p.SearchPlaces,
	})
	if err != nil {
		return zero, err
	}

	value, found := raw.Value()
	if !found {
		r.log.Debug().Str("dir", rootDir).Str("policy", p.Trust.String()).Msg("no config found, using fallback")
		value = p.Fallback()
	}

	res := s.Validate(value, p.Validation)
	if res.Err != nil {
		cerr := validator.Translate(res.Err)
		if p.Trust == Strict {
			return zero, cerr
		}
		r.notifier.Warn(Warning{
			Dependency: name,
			Message:    cerr.Error(),
			Source:     raw.Filepath(),
		})
	}

	return userconfig.Decode[T](res.Value)
}
