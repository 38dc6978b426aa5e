package cli

import (
	"fmt"
	"time"

	"rnconfig/internal/baseline"
	"rnconfig/internal/drift"

	"github.com/spf13/cobra"
)

// baselines returns the store selected by the settings.
func (a *app) baselines() *baseline.Store {
	if a.settings.BaselineDir != "" {
		return baseline.NewStore(a.settings.BaselineDir)
	}
	return baseline.NewStore(baseline.DefaultDir(a.root))
}

func (a *app) newBaselineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Save resolved project configuration and compare against it later",
	}
	cmd.AddCommand(
		a.newBaselineSaveCmd(),
		a.newBaselineListCmd(),
		a.newBaselineDiffCmd(),
		a.newBaselineDeleteCmd(),
	)
	return cmd
}

func (a *app) newBaselineSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <name>",
		Short: "Snapshot the resolved project configuration under a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := a.snapshotRoot(cmd.Context(), a.resolver(a.warnings()))
			if err != nil {
				return runtimeError(err)
			}

			b := baseline.Baseline{
				Name:      args[0],
				Root:      a.root,
				Snapshot:  snap,
				CreatedAt: time.Now().UTC(),
			}
			if err := a.baselines().Save(b); err != nil {
				return runtimeError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved baseline %s (%s)\n", b.Name, snap.ConfigVersion)
			return nil
		},
	}
}

func (a *app) newBaselineListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved baselines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			summaries, err := a.baselines().List()
			if err != nil {
				return runtimeError(err)
			}
			return writeValue(a.stdout, a.settings.Output, summaries)
		},
	}
}

func (a *app) newBaselineDiffCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "diff <name>",
		Short: "Compare the resolved project configuration with a saved baseline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "cli" && format != "json" {
				return fmt.Errorf("invalid --format %q: want cli or json", format)
			}

			b, err := a.baselines().Load(args[0])
			if err != nil {
				return runtimeError(err)
			}
			curr, err := a.snapshotRoot(cmd.Context(), a.resolver(a.warnings()))
			if err != nil {
				return runtimeError(err)
			}

			report := drift.Detect(b.Snapshot, curr)
			report.Source = "baseline " + b.Name
			if format == "json" {
				out, err := drift.FormatJSON(report)
				if err != nil {
					return runtimeError(err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			}
			if !report.HasDrift {
				fmt.Fprintf(cmd.OutOrStdout(), "configuration matches baseline %s\n", b.Name)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), drift.FormatCLI(report))
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "cli", "report format: cli or json")
	return cmd
}

func (a *app) newBaselineDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved baseline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.baselines().Delete(args[0]); err != nil {
				return runtimeError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted baseline %s\n", args[0])
			return nil
		},
	}
}
