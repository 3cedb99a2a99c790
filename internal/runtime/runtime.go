package runtime

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// PackageManager is the subset of package manager behavior linking needs.
type PackageManager interface {
	// GlobalRoot returns the global install root.
	GlobalRoot(ctx context.Context) (string, error)
	// Link registers the package in dir in the global registry.
	Link(ctx context.Context, dir string) error
	// LinkPackage links the globally registered package name into projectDir.
	LinkPackage(ctx context.Context, projectDir, name string) error
	// Version returns the package manager's version string.
	Version(ctx context.Context) (string, error)
}

// Supported package manager flavors.
const (
	FlavorNpm  = "npm"
	FlavorPnpm = "pnpm"
)

// commandSet holds the argument lists for one flavor.
type commandSet struct {
	root        []string
	link        []string
	linkPackage []string // "--" and the package name are appended
}

var flavors = map[string]commandSet{
	FlavorNpm: {
		root:        []string{"root", "-g"},
		link:        []string{"link"},
		linkPackage: []string{"link", "--"},
	},
	FlavorPnpm: {
		root:        []string{"root", "-g"},
		link:        []string{"link", "--global"},
		linkPackage: []string{"link", "--global", "--"},
	},
}

// Flavor derives the flavor from an executable name or path. Unrecognized
// executables are assumed to be npm-compatible.
func Flavor(bin string) string {
	base := strings.ToLower(filepath.Base(bin))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if _, ok := flavors[base]; ok {
		return base
	}
	return FlavorNpm
}

// Dispatch returns a Runtime for the given executable.
func Dispatch(bin string) *Runtime {
	if bin == "" {
		bin = FlavorNpm
	}
	return &Runtime{Bin: bin}
}

// Runtime runs package manager commands as subprocesses.
type Runtime struct {
	Bin string

	// Stdin, Stdout and Stderr default to the process's own streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (r *Runtime) commands() commandSet {
	return flavors[Flavor(r.Bin)]
}

func (r *Runtime) stdin() io.Reader {
	if r.Stdin == nil {
		return os.Stdin
	}
	return r.Stdin
}

func (r *Runtime) stdout() io.Writer {
	if r.Stdout == nil {
		return os.Stdout
	}
	return r.Stdout
}

func (r *Runtime) stderr() io.Writer {
	if r.Stderr == nil {
		return os.Stderr
	}
	return r.Stderr
}
