package cli

import (
	"github.com/bridged-dev/bridged/internal/branding"
	"github.com/bridged-dev/bridged/internal/config"
	"github.com/bridged-dev/bridged/internal/linker"
	"github.com/bridged-dev/bridged/internal/logging"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string

	verbosity int
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` points a Node project at a local working copy of a library by
driving npm link, and shows which dependencies are currently linked.

Run without a command to list linked packages.`,
	Example: `  bridged                      # list linked packages
  bridged link ../my-package   # link a package
  bridged unlink my-package    # remove its symlinks
  bridged unlink my-package local`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.SetupLogger(verbosity)
		config.Load()
	},
	RunE: runList,
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (-v info, -vv debug, -vvv trace)")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}

// newService builds the linker service from the loaded settings. Progress
// lines go to the command's output.
func newService(cmd *cobra.Command) *linker.Service {
	return linker.New(config.Current(), cmd.OutOrStdout())
}
