package cli

import (
	"fmt"
	"io"

	"github.com/bridged-dev/bridged/internal/linker"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(linkCmd)
}

var linkCmd = &cobra.Command{
	Use:   "link <path-to-package>",
	Short: "Link a local package folder into this project",
	Long: `Register the package at the given path globally with npm link, then link
it into the current project's node_modules.

If the global step succeeds but the project step fails, the global link is
left in place and the command reports which step failed.

Example:
  bridged link ../my-package`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := newService(cmd).Link(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return reportLink(cmd.OutOrStdout(), result)
	},
}

// reportLink prints the outcome of a link. A partial link is reported as a
// warning and returned as an error so the exit status reflects it.
func reportLink(w io.Writer, result *linker.LinkResult) error {
	if result.Partial() {
		fmt.Fprintf(w, "%s %q is linked globally but not into this project\n",
			warningStyle.Render("!"), result.Name)
		fmt.Fprintf(w, "  Global: %s\n", successStyle.Render("linked"))
		fmt.Fprintf(w, "  Local:  %s\n", errorStyle.Render("failed"))
		return fmt.Errorf("%s phase failed: %w", linker.PhaseLocalize, result.LocalErr)
	}

	fmt.Fprintf(w, "%s Successfully linked %q\n", successStyle.Render("✓"), result.Name)
	fmt.Fprintf(w, "  Global: %s\n", headerStyle.Render("linked"))
	fmt.Fprintf(w, "  Local:  %s\n", headerStyle.Render("installed"))
	return nil
}
