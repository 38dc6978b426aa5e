package settings

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
	"github.com/spf13/pflag"
)

type builder struct {
	layers []*Settings
	err    error
}

func newBuilder() *builder {
	return &builder{
		layers: make([]*Settings, 0, 3),
	}
}

// Load builds the settings for a run from defaults, the process environment
// and the changed flags in fs.
func Load(fs *pflag.FlagSet) (*Settings, error) {
	return newBuilder().
		withDefaults().
		withEnv(nil).
		withFlags(fs).
		build()
}

func (b *builder) build() (*Settings, error) {
	if b.err != nil {
		return nil, fmt.Errorf("loading settings: %w", b.err)
	}

	s := new(Settings)
	for _, layer := range b.layers {
		if err := mergo.Merge(s, layer, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("merging settings: %w", err)
		}
	}

	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (b *builder) withDefaults() *builder {
	b.layers = append(b.layers, Defaults())
	return b
}

// withEnv reads RNCONFIG_* variables. A nil environment means the process
// environment.
func (b *builder) withEnv(environment map[string]string) *builder {
	s := &Settings{}
	opts := env.Options{Prefix: EnvPrefix}
	if environment != nil {
		opts.Environment = environment
	}
	if err := env.ParseWithOptions(s, opts); err != nil {
		b.err = errors.Join(b.err, fmt.Errorf("parsing environment: %w", err))
		return b
	}

	b.layers = append(b.layers, s)
	return b
}

func (b *builder) withFlags(fs *pflag.FlagSet) *builder {
	if fs == nil {
		return b
	}
	s, err := fromFlags(fs)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.layers = append(b.layers, s)
	return b
}
