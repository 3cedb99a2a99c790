package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/bridged-dev/bridged/internal/linker"
	"github.com/bridged-dev/bridged/internal/registry"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(unlinkCmd)
}

var unlinkCmd = &cobra.Command{
	Use:   "unlink <package-name> [local|global]",
	Short: "Remove the symlinks for a package",
	Long: `Remove the symlink for a package from the current project, the global npm
root, or both. Without a location, every registry that holds the package is
cleaned up.

Example:
  bridged unlink my-package
  bridged unlink @scope/my-package local
  bridged unlink my-package global`,
	Args:      cobra.RangeArgs(1, 2),
	ValidArgs: []string{"local", "global"},
	RunE: func(cmd *cobra.Command, args []string) error {
		loc := registry.Auto
		if len(args) == 2 {
			var err error
			if loc, err = registry.ParseLocation(args[1]); err != nil {
				return err
			}
		}

		result, err := newService(cmd).Unlink(cmd.Context(), args[0], loc)
		if err != nil {
			return err
		}
		reportUnlink(cmd.OutOrStdout(), result)
		return nil
	},
}

func reportUnlink(w io.Writer, result *linker.UnlinkResult) {
	var removed []string
	if result.LocalRemoved() {
		removed = append(removed, "local")
	}
	if result.GlobalRemoved() {
		removed = append(removed, "global")
	}

	if len(removed) == 0 {
		fmt.Fprintln(w, warningStyle.Render("No symlinks removed"))
	} else {
		fmt.Fprintf(w, "%s Unlinked %q from %s\n", successStyle.Render("✓"), result.Name, strings.Join(removed, " and "))
	}

	for _, r := range []linker.Removal{result.Local, result.Global} {
		if r.State == linker.Failed {
			fmt.Fprintf(w, "  %s could not remove %s: %v\n", errorStyle.Render("✗"), r.Path, r.Err)
		}
	}
}
