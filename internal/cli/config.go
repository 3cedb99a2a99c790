package cli

import (
	"fmt"
	"strings"

	"github.com/bridged-dev/bridged/internal/branding"
	"github.com/bridged-dev/bridged/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long: fmt.Sprintf(`Read and write settings stored at ~/%s/config.yaml.

Known keys: %s
Each key can be overridden with an environment variable, e.g. %s.`,
		branding.HomeDir(), strings.Join(config.Keys, ", "), branding.EnvVar("NPM_BIN")),
}

var configSetCmd = &cobra.Command{
	Use:       "set <key> <value>",
	Short:     "Set a configuration value",
	Args:      cobra.ExactArgs(2),
	ValidArgs: config.Keys,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:       "get <key>",
	Short:     "Get a configuration value",
	Args:      cobra.ExactArgs(1),
	ValidArgs: config.Keys,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !config.IsKnown(args[0]) {
			return fmt.Errorf("unknown config key %q (known keys: %s)", args[0], strings.Join(config.Keys, ", "))
		}
		fmt.Fprintln(cmd.OutOrStdout(), config.Get(args[0]))
		return nil
	},
}
