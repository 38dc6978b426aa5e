package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"rnconfig/internal/discovery"
	"rnconfig/internal/logger"
	"rnconfig/internal/notify"
	"rnconfig/internal/resolver"
	"rnconfig/internal/settings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

// app is the state shared by the commands of one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer

	settings *settings.Settings
	root     string
	log      *logger.Logger
	explorer *discovery.Explorer
}

// Run executes the command line args and returns an exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}

	rootCmd := a.newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	code := exitCodeOf(err)
	switch code {
	case ExitSuccess:
	case ExitUsageError:
		fmt.Fprintf(stderr, "Error: %v\nRun 'rnconfig --help' for usage.\n", err)
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return code
}

func (a *app) newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rnconfig",
		Short: "Resolve React Native CLI configuration",
		Long: "rnconfig discovers, validates and prints the configuration of a React Native " +
			"project and of every dependency it has installed.",
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	settings.BindFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		a.newConfigCmd(),
		a.newDependencyCmd(),
		a.newCheckCmd(),
		a.newWatchCmd(),
		a.newBaselineCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// setup loads settings and builds the pipeline before any command runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	s, err := settings.Load(cmd.Flags())
	if err != nil {
		return err
	}

	root, err := filepath.Abs(s.Root)
	if err != nil {
		return fmt.Errorf("resolving root: %w", err)
	}

	log, err := logger.New(a.stderr, logger.Options{
		Level:   s.LogLevel,
		Format:  s.LogFormat,
		NoColor: !isTerminal(a.stderr),
	})
	if err != nil {
		return err
	}

	a.settings = s
	a.root = root
	a.log = log
	a.explorer = discovery.New(discovery.ModuleName, discovery.WithLogger(log.Component("discovery")))
	return nil
}

// resolver builds a Resolver reporting dependency warnings to n.
func (a *app) resolver(n resolver.Notifier) *resolver.Resolver {
	return resolver.New(a.explorer, n, resolver.WithLogger(a.log.Component("resolver")))
}

// warnings returns a notifier that logs and records dependency warnings.
func (a *app) warnings() *notify.Collector {
	return notify.NewCollector(notify.NewLogNotifier(a.log.Component("notify"), a.stderr))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print rnconfig version",
		Args:  cobra.NoArgs,
		// no settings needed
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "rnconfig version %s\n", version)
		},
	}
}
