package cli

import (
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/bridged-dev/bridged/internal/config"
	"github.com/bridged-dev/bridged/internal/linker"
	"github.com/bridged-dev/bridged/internal/registry"
	"github.com/bridged-dev/bridged/internal/runtime"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the package manager and both link registries",
	Long: `Run diagnostic checks: package manager availability and version, the
location of the project and global registries, and any linked entries that
are broken or could not be read.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d := &doctor{
			w:        cmd.OutOrStdout(),
			svc:      newService(cmd),
			settings: config.Current(),
		}
		if n := d.run(cmd.Context()); n > 0 {
			return fmt.Errorf("doctor found %d problem(s)", n)
		}
		return nil
	},
}

type doctor struct {
	w        io.Writer
	svc      *linker.Service
	settings config.Settings
	problems int
}

func (d *doctor) run(ctx context.Context) int {
	d.checkPackageManager(ctx)
	d.checkRegistries(ctx)
	return d.problems
}

func (d *doctor) ok(format string, args ...any) {
	fmt.Fprintf(d.w, "  [ OK ] "+format+"\n", args...)
}

func (d *doctor) warn(format string, args ...any) {
	fmt.Fprintf(d.w, "  [WARN] "+format+"\n", args...)
}

func (d *doctor) fail(format string, args ...any) {
	d.problems++
	fmt.Fprintf(d.w, "  [FAIL] "+format+"\n", args...)
}

func (d *doctor) checkPackageManager(ctx context.Context) {
	fmt.Fprintln(d.w, "Package manager:")

	bin := d.settings.NpmBin
	path, err := exec.LookPath(bin)
	if err != nil {
		d.fail("%s not found in PATH", bin)
		return
	}
	d.ok("%s found at %s", bin, path)

	version, err := d.svc.PM.Version(ctx)
	if err != nil {
		d.fail("%s --version: %v", bin, err)
		return
	}

	satisfied, err := runtime.SatisfiesConstraint(version, d.settings.MinNpmVersion)
	switch {
	case err != nil:
		d.warn("cannot compare version %s against %q: %v", version, d.settings.MinNpmVersion, err)
	case !satisfied:
		d.fail("%s %s does not satisfy %q", bin, version, d.settings.MinNpmVersion)
	default:
		d.ok("%s %s satisfies %q", bin, version, d.settings.MinNpmVersion)
	}
}

func (d *doctor) checkRegistries(ctx context.Context) {
	fmt.Fprintln(d.w, "Registries:")

	if root, err := d.svc.Locator.LocalRoot(); err != nil {
		d.fail("local registry: %v", err)
	} else {
		d.checkRoot(root)
	}

	if root, err := d.svc.Locator.GlobalRoot(ctx); err != nil {
		d.fail("global registry: %v", err)
	} else {
		d.checkRoot(root)
	}
}

// checkRoot walks one registry and reports broken or unreadable entries.
func (d *doctor) checkRoot(root registry.Root) {
	if _, err := d.svc.Fs.Stat(root.Path); err != nil {
		d.warn("%s registry %s does not exist", root.Kind, root.Path)
		return
	}

	var linked int
	for _, e := range d.svc.Scanner.Walk(root.Path) {
		switch e.Outcome {
		case registry.Unreadable:
			d.fail("%s: cannot read %s: %v", root.Kind, e.Path, e.Err)
		case registry.Found:
			linked++
			if _, err := d.svc.Fs.Stat(e.Package.Target); err != nil {
				d.fail("%s: %s points to missing %s", root.Kind, e.Name, e.Package.Target)
			}
		}
	}
	d.ok("%s registry %s (%d linked)", root.Kind, root.Path, linked)
}
