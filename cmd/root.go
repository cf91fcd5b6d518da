// Package cmd implements the workspace-updater command line.
//
// The root command audits the catalog of a pnpm workspace manifest against the
// npm registry and, with --update, writes the selected upgrades back.
package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/smashah/workspace-updater/pkg/errors"
	"github.com/smashah/workspace-updater/pkg/verbose"
)

var exitFunc = os.Exit

// opts is bound to the root command's flags.
var opts = defaultOptions()

var rootCmd = &cobra.Command{
	Use:   "workspace-updater",
	Short: "Audit and update pnpm workspace catalog dependencies",
	Long: `Check every entry in the catalog of pnpm-workspace.yaml against the npm registry,
group outdated entries by release type, and optionally rewrite the catalog.

Without flags the manifest is only read. With --update, outdated entries are written
back; --major, --minor and --patch restrict the update to those exact release types.`,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	Version:       Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if opts.Verbose {
			verbose.Enable()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := Run(cmd.Context(), opts, cmd.OutOrStdout()); err != nil {
			return errors.NewExitError(errors.ExitFailure, err)
		}
		return nil
	},
}

// Execute runs the root command and exits with a non-zero code on failure.
//
// The command context is cancelled on SIGINT so in-flight registry requests stop.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		code := errors.GetExitCode(err)
		logrus.WithField("exit_code", code).Error(err)
		verbose.Infof("Exit code %d: %v", code, err)
		stop()
		exitFunc(code)
	}
}

// ExecuteTest runs the root command for testing (returns error instead of exiting).
//
// Returns:
//   - error: Command execution error, or nil on success
func ExecuteTest() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&opts.Workspace, "workspace", "w", "", "Path to pnpm-workspace.yaml (default: search . then up to two parents)")
	flags.BoolVar(&opts.Update, "update", false, "Write outdated catalog entries back to the manifest")
	flags.BoolVar(&opts.Major, "major", false, "With --update, apply major updates")
	flags.BoolVar(&opts.Minor, "minor", false, "With --update, apply minor updates")
	flags.BoolVar(&opts.Patch, "patch", false, "With --update, apply patch updates")
	flags.BoolVar(&opts.DryRun, "dry-run", false, "With --update, print the planned changes without writing")
	flags.StringVar(&opts.Registry, "registry", opts.Registry, "npm registry base URL")
	flags.DurationVar(&opts.Timeout, "timeout", opts.Timeout, "Per-request registry timeout")
	flags.StringVarP(&opts.Output, "output", "o", opts.Output, "Report format: table, json, csv or xml")
	rootCmd.PersistentFlags().BoolVar(&opts.Verbose, "verbose", false, "Enable verbose debug output")

	rootCmd.SetVersionTemplate(versionTemplate())
}
