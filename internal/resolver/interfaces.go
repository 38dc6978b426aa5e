package resolver

import (
	"context"

	"rnconfig/internal/discovery"
	"rnconfig/internal/rawconfig"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/resolver_mock.go -package=mock

// Discoverer finds the raw configuration for a query. *discovery.Explorer
// implements it.
type Discoverer interface {
	Search(ctx context.Context, q discovery.Query) (rawconfig.Raw, error)
}

// Notifier receives warnings about untrusted configuration that failed
// validation. Implementations must be safe for concurrent use.
type Notifier interface {
	Warn(w Warning)
}

// Warning describes a dependency whose configuration was accepted despite
// validation errors.
type Warning struct {
	// Dependency is the package name.
	Dependency string

	// Message is the translated validation error.
	Message string

	// Source is the file the configuration came from, or "" for the default.
	Source string
}
