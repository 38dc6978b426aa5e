package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"rnconfig/internal/artifact"
	"rnconfig/internal/discovery"
	"rnconfig/internal/drift"
	"rnconfig/internal/resolver"
	"rnconfig/internal/watch"

	"github.com/spf13/cobra"
)

func (a *app) newConfigCmd() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration of the project and its dependencies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resolved, err := a.resolveProject(cmd.Context(), a.resolver(a.warnings()))
			if err != nil {
				return runtimeError(err)
			}

			if outFile != "" {
				snap, err := artifact.Generate(resolved)
				if err != nil {
					return runtimeError(err)
				}
				if err := snap.WriteToFile(outFile); err != nil {
					return runtimeError(err)
				}
				a.log.Info().Str("path", outFile).Str("version", snap.ConfigVersion).Msg("snapshot written")
			}

			return writeValue(a.stdout, a.settings.Output, resolved)
		},
	}
	cmd.Flags().StringVar(&outFile, "out", "", "also write a flattened snapshot of the result to this file")
	return cmd
}

func (a *app) newDependencyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dependency <name>",
		Short: "Print the resolved configuration of one installed dependency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dep, err := a.resolveDependency(cmd.Context(), a.resolver(a.warnings()), args[0])
			if err != nil {
				return runtimeError(err)
			}
			return writeValue(a.stdout, a.settings.Output, dep)
		},
	}
}

func (a *app) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the project configuration and report dependency warnings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			warnings := a.warnings()
			resolved, err := a.resolveProject(cmd.Context(), a.resolver(warnings))
			if err != nil {
				return runtimeError(err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "project config is valid (%s)\n", resolved.Root)
			fmt.Fprintf(out, "%d dependencies resolved\n", len(resolved.Dependencies))

			ws := warnings.Warnings()
			if len(ws) == 0 {
				return nil
			}
			sort.Slice(ws, func(i, j int) bool { return ws[i].Dependency < ws[j].Dependency })
			fmt.Fprintf(out, "%d dependencies with invalid configuration:\n", len(ws))
			for _, w := range ws {
				fmt.Fprintf(out, "  %s: %s\n", w.Dependency, w.Message)
			}
			return nil
		},
	}
}

func (a *app) newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Re-resolve the project configuration whenever it changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := a.resolver(a.warnings())

			prev, err := a.snapshotRoot(cmd.Context(), r)
			if err != nil {
				// an invalid config may be fixed while watching
				a.log.Error().Err(err).Msg("resolving project config")
			}

			w, err := watch.New(a.root, discovery.DefaultSearchPlaces(discovery.ModuleName),
				watch.WithLogger(a.log.Component("watch")))
			if err != nil {
				return runtimeError(err)
			}
			defer w.Close()

			a.log.Info().Str("root", a.root).Msg("watching for config changes")
			err = w.Run(cmd.Context(), func(ctx context.Context, path string) {
				curr, err := a.snapshotRoot(ctx, r)
				if err != nil {
					a.log.Error().Err(err).Str("path", path).Msg("resolving project config")
					return
				}
				report := drift.Detect(prev, curr)
				report.Source = path
				fmt.Fprint(a.stdout, drift.FormatCLI(report))
				prev = curr
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return runtimeError(err)
		},
	}
}

// snapshotRoot resolves the root configuration and snapshots it.
func (a *app) snapshotRoot(ctx context.Context, r *resolver.Resolver) (artifact.ConfigArtifact, error) {
	ctx, cancel := context.WithTimeout(ctx, a.settings.Timeout)
	defer cancel()

	cfg, err := r.Root(ctx, a.root)
	if err != nil {
		return artifact.ConfigArtifact{}, err
	}
	return artifact.Generate(cfg)
}
