package registry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bridged-dev/bridged/internal/linkerr"
)

// GlobalRootFinder asks the package manager for its global install root.
type GlobalRootFinder interface {
	GlobalRoot(ctx context.Context) (string, error)
}

// Locator computes registry roots. Roots are recomputed on every call.
type Locator struct {
	// StoreDir is the dependency store directory name inside a project.
	StoreDir string
	// GlobalRootOverride, when set, is used instead of asking Finder.
	GlobalRootOverride string
	// Finder queries the package manager for the global root.
	Finder GlobalRootFinder
	// Getwd returns the project directory; defaults to os.Getwd.
	Getwd func() (string, error)
}

// ProjectDir returns the current project directory.
func (l *Locator) ProjectDir() (string, error) {
	getwd := l.Getwd
	if getwd == nil {
		getwd = os.Getwd
	}
	dir, err := getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	return dir, nil
}

// LocalRoot returns <project dir>/<store dir>.
func (l *Locator) LocalRoot() (Root, error) {
	dir, err := l.ProjectDir()
	if err != nil {
		return Root{}, err
	}
	return Root{Kind: Local, Path: filepath.Join(dir, l.StoreDir)}, nil
}

// GlobalRoot returns the package manager's global install root. Failure to
// determine it is a tool error.
func (l *Locator) GlobalRoot(ctx context.Context) (Root, error) {
	if l.GlobalRootOverride != "" {
		return Root{Kind: Global, Path: l.GlobalRootOverride}, nil
	}
	if l.Finder == nil {
		return Root{}, linkerr.Tool("locate", nil, "", "no package manager configured to locate the global root")
	}
	path, err := l.Finder.GlobalRoot(ctx)
	if err != nil {
		return Root{}, err
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Root{}, linkerr.Tool("locate", nil, "", "package manager reported an empty global root")
	}
	return Root{Kind: Global, Path: path}, nil
}
