package resolver

import (
	"rnconfig/internal/discovery"
	"rnconfig/internal/schema"
	"rnconfig/internal/userconfig"
)

// TrustPolicy says how much a configuration source is trusted.
type TrustPolicy int

const (
	// Strict sources fail resolution on the first validation error.
	Strict TrustPolicy = iota

	// BestEffort sources are reported and then accepted as well as possible.
	BestEffort
)

// String returns the policy name.
func (t TrustPolicy) String() string {
	switch t {
	case Strict:
		return "strict"
	case BestEffort:
		return "best-effort"
	default:
		return "unknown"
	}
}

// Policy parameterizes the resolution pipeline.
type Policy struct {
	Trust TrustPolicy

	// SearchPlaces restricts discovery. Nil means the explorer's defaults.
	SearchPlaces []string

	// Fallback produces the value validated when nothing is found.
	Fallback func() any

	// Validation is passed to the schema validator.
	Validation schema.Options
}

// RootPolicy is used for the project's own configuration.
func RootPolicy() Policy {
	return Policy{
		Trust:      Strict,
		Fallback:   func() any { return schema.Missing },
		Validation: schema.Options{AbortEarly: true},
	}
}

// DependencyPolicy is used for configuration shipped by installed packages.
func DependencyPolicy() Policy {
	return Policy{
		Trust:        BestEffort,
		SearchPlaces: discovery.DependencySearchPlaces(),
		Fallback:     func() any { return userconfig.DefaultDependencyConfig() },
		Validation:   schema.Options{AbortEarly: false},
	}
}
