package settings

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Flag names.
const (
	FlagRoot        = "root"
	FlagLogLevel    = "log-level"
	FlagLogFormat   = "log-format"
	FlagOutput      = "output"
	FlagTimeout     = "timeout"
	FlagConcurrency = "concurrency"
	FlagBaselineDir = "baseline-dir"
)

// BindFlags registers the settings flags on fs. Flag defaults are left zero
// so that an unset flag never overrides the environment.
func BindFlags(fs *pflag.FlagSet) {
	fs.StringP(FlagRoot, "r", "", "project root directory (default \".\")")
	fs.String(FlagLogLevel, "", "log level: debug, info, warn, error (default \"info\")")
	fs.String(FlagLogFormat, "", "log format: console or json (default \"console\")")
	fs.StringP(FlagOutput, "o", "", "output format: json or yaml (default \"json\")")
	fs.Duration(FlagTimeout, 0, "time limit for a resolution run (default 30s)")
	fs.Int(FlagConcurrency, 0, "dependencies resolved in parallel (default: number of CPUs)")
	fs.String(FlagBaselineDir, "", "directory for saved baselines (default \"<root>/.rnconfig/baselines\")")
}

// fromFlags returns the settings explicitly set on the command line.
func fromFlags(fs *pflag.FlagSet) (*Settings, error) {
	s := &Settings{}
	var err error

	visit := func(name string, read func() error) {
		if err != nil || !fs.Changed(name) {
			return
		}
		if rerr := read(); rerr != nil {
			err = fmt.Errorf("reading --%s: %w", name, rerr)
		}
	}

	visit(FlagRoot, func() (e error) { s.Root, e = fs.GetString(FlagRoot); return })
	visit(FlagLogLevel, func() (e error) { s.LogLevel, e = fs.GetString(FlagLogLevel); return })
	visit(FlagLogFormat, func() (e error) { s.LogFormat, e = fs.GetString(FlagLogFormat); return })
	visit(FlagOutput, func() (e error) { s.Output, e = fs.GetString(FlagOutput); return })
	visit(FlagTimeout, func() (e error) { s.Timeout, e = fs.GetDuration(FlagTimeout); return })
	visit(FlagConcurrency, func() (e error) { s.Concurrency, e = fs.GetInt(FlagConcurrency); return })
	visit(FlagBaselineDir, func() (e error) { s.BaselineDir, e = fs.GetString(FlagBaselineDir); return })

	if err != nil {
		return nil, err
	}
	return s, nil
}
