package settings

import (
	"runtime"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestBuild_DefaultsOnly(t *testing.T) {
	s, err := newBuilder().withDefaults().withEnv(map[string]string{}).build()

	require.NoError(t, err)
	assert.Equal(t, Defaults(), s)
	assert.Equal(t, runtime.NumCPU(), s.Concurrency)
}

func TestBuild_EnvOverridesDefaults(t *testing.T) {
	s, err := newBuilder().
		withDefaults().
		withEnv(map[string]string{
			"RNCONFIG_ROOT":        "/app",
			"RNCONFIG_OUTPUT":      "yaml",
			"RNCONFIG_TIMEOUT":     "5s",
			"RNCONFIG_CONCURRENCY": "2",
			"ROOT":                 "/ignored",
		}).
		build()

	require.NoError(t, err)
	assert.Equal(t, "/app", s.Root)
	assert.Equal(t, OutputYAML, s.Output)
	assert.Equal(t, 5*time.Second, s.Timeout)
	assert.Equal(t, 2, s.Concurrency)
	assert.Equal(t, "info", s.LogLevel)
}

func TestBuild_FlagsOverrideEnv(t *testing.T) {
	fs := newFlagSet(t, "--root", "/flag", "--log-level", "debug")

	s, err := newBuilder().
		withDefaults().
		withEnv(map[string]string{"RNCONFIG_ROOT": "/env", "RNCONFIG_OUTPUT": "yaml"}).
		withFlags(fs).
		build()

	require.NoError(t, err)
	assert.Equal(t, "/flag", s.Root)
	assert.Equal(t, "debug", s.LogLevel)
	// unset flags do not clobber the environment
	assert.Equal(t, OutputYAML, s.Output)
}

func TestBuild_InvalidEnvValue(t *testing.T) {
	_, err := newBuilder().
		withDefaults().
		withEnv(map[string]string{"RNCONFIG_TIMEOUT": "soon"}).
		build()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing environment")
}

func TestBuild_Validation(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{name: "output", args: []string{"-o", "xml"}, want: ErrInvalidOutput},
		{name: "log format", args: []string{"--log-format", "logfmt"}, want: ErrInvalidLogFormat},
		{name: "timeout", args: []string{"--timeout", "-1s"}, want: ErrInvalidTimeout},
		{name: "concurrency", args: []string{"--concurrency", "-3"}, want: ErrInvalidConcurrency},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newBuilder().
				withDefaults().
				withEnv(map[string]string{}).
				withFlags(newFlagSet(t, tt.args...)).
				build()

			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoad_UsesProcessEnvironment(t *testing.T) {
	t.Setenv("RNCONFIG_LOG_FORMAT", "json")

	s, err := Load(newFlagSet(t))

	require.NoError(t, err)
	assert.Equal(t, "json", s.LogFormat)
}

func TestBuild_BaselineDir(t *testing.T) {
	s, err := newBuilder().
		withDefaults().
		withEnv(map[string]string{"RNCONFIG_BASELINE_DIR": "/env/baselines"}).
		withFlags(newFlagSet(t)).
		build()
	require.NoError(t, err)
	assert.Equal(t, "/env/baselines", s.BaselineDir)

	s, err = newBuilder().
		withDefaults().
		withEnv(map[string]string{"RNCONFIG_BASELINE_DIR": "/env/baselines"}).
		withFlags(newFlagSet(t, "--baseline-dir", "/flag/baselines")).
		build()
	require.NoError(t, err)
	assert.Equal(t, "/flag/baselines", s.BaselineDir)
}
