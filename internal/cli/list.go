package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/bridged-dev/bridged/internal/registry"
	"github.com/spf13/cobra"
)

var (
	listLocal  bool
	listGlobal bool
	listJSON   bool
)

var listCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List linked packages",
	Long: `List packages that are symlinked into the current project's node_modules
and into the global npm root. This is the default command.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	for _, c := range []*cobra.Command{listCmd, rootCmd} {
		c.Flags().BoolVar(&listLocal, "local", false, "Only list packages linked into the current project")
		c.Flags().BoolVar(&listGlobal, "global", false, "Only list globally linked packages")
		c.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	}
	rootCmd.AddCommand(listCmd)
}

// listing holds the scanned registries. A nil slice means the registry was
// not requested.
type listing struct {
	Local  []registry.LinkedPackage `json:"local"`
	Global []registry.LinkedPackage `json:"global"`
}

func runList(cmd *cobra.Command, args []string) error {
	svc := newService(cmd)
	ctx := cmd.Context()

	// Neither flag means both registries.
	wantLocal := listLocal || !listGlobal
	wantGlobal := listGlobal || !listLocal

	var l listing
	if wantLocal {
		l.Local = sortPackages(svc.ScanLocal(ctx))
	}
	if wantGlobal {
		l.Global = sortPackages(svc.ScanGlobal(ctx))
	}

	if listJSON {
		return printListJSON(cmd.OutOrStdout(), l)
	}
	printListing(cmd.OutOrStdout(), l)
	return nil
}

func sortPackages(pkgs []registry.LinkedPackage) []registry.LinkedPackage {
	if pkgs == nil {
		pkgs = []registry.LinkedPackage{}
	}
	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].Name < pkgs[j].Name })
	return pkgs
}

func printListing(w io.Writer, l listing) {
	if len(l.Local) == 0 && len(l.Global) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No linked packages found."))
		return
	}

	if len(l.Local) > 0 {
		printSection(w, "Local:", l.Local)
	}
	if len(l.Global) > 0 {
		if len(l.Local) > 0 {
			fmt.Fprintln(w)
		}
		printSection(w, "Global:", l.Global)
	}
}

func printSection(w io.Writer, title string, pkgs []registry.LinkedPackage) {
	fmt.Fprintln(w, headerStyle.Render(title))
	for _, p := range pkgs {
		fmt.Fprintf(w, "  %s %s %s %s\n",
			nameStyle.Render(p.Name),
			displayVersion(p.Version),
			pathStyle.Render("→"),
			pathStyle.Render(p.Target))
	}
}

func printListJSON(w io.Writer, l listing) error {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling package list: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
