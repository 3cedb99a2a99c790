package linker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bridged-dev/bridged/internal/linkerr"
	"github.com/bridged-dev/bridged/internal/logging"
	"github.com/bridged-dev/bridged/internal/manifest"
	"github.com/bridged-dev/bridged/internal/registry"
)

// Link phases, used in error messages.
const (
	PhaseGlobalize = "globalize"
	PhaseLocalize  = "localize"
)

// LinkState is how far a link got.
type LinkState int

const (
	// NotStarted means no package manager command succeeded.
	NotStarted LinkState = iota
	// GlobalLinked means the package is registered globally but not linked
	// into the project.
	GlobalLinked
	// FullyLinked means both phases succeeded.
	FullyLinked
)

// String returns a short label for the state.
func (s LinkState) String() string {
	switch s {
	case NotStarted:
		return "not-started"
	case GlobalLinked:
		return "global-linked"
	case FullyLinked:
		return "fully-linked"
	default:
		return "unknown"
	}
}

// LinkResult reports the outcome of Link.
type LinkResult struct {
	Name  string
	Path  string
	State LinkState
	// LocalErr is set when the second phase failed after the first succeeded.
	LocalErr error
}

// GlobalLinked reports whether the global phase succeeded.
func (r *LinkResult) GlobalLinked() bool { return r.State >= GlobalLinked }

// LocalLinked reports whether the package was linked into the project.
func (r *LinkResult) LocalLinked() bool { return r.State == FullyLinked }

// Partial reports whether linking stopped between the two phases.
func (r *LinkResult) Partial() bool { return r.State == GlobalLinked }

// Link registers the package at path globally and links it into the current
// project. Input problems are returned as validation errors before any
// command runs. A failed global phase returns a tool error. A failed project
// phase is not an error: the result is in state GlobalLinked with LocalErr
// set, and nothing is rolled back.
func (s *Service) Link(ctx context.Context, path string) (*LinkResult, error) {
	dir, name, err := s.checkPackage(path)
	if err != nil {
		return nil, err
	}

	log := s.logger.With().Str("package", name).Str("path", dir).Logger()
	done := logging.LogOperationStart(log, "link")
	defer done()

	result := &LinkResult{Name: name, Path: dir, State: NotStarted}

	fmt.Fprintf(s.progress(), "Linking %q globally...\n", name)
	if err := s.PM.Link(ctx, dir); err != nil {
		return result, linkerr.Tool(PhaseGlobalize, err, "", "failed to link %q globally", name)
	}
	result.State = GlobalLinked
	log.Debug().Str("state", result.State.String()).Msg("Global phase complete")

	projectDir, err := s.Locator.ProjectDir()
	if err != nil {
		result.LocalErr = linkerr.Tool(PhaseLocalize, err, "", "failed to link %q into the current project", name)
		return result, nil
	}

	fmt.Fprintf(s.progress(), "Installing %q in current project...\n", name)
	if err := s.PM.LinkPackage(ctx, projectDir, name); err != nil {
		result.LocalErr = linkerr.Tool(PhaseLocalize, err, "", "failed to link %q into %s", name, projectDir)
		log.Debug().Err(err).Msg("Project phase failed; global link left in place")
		return result, nil
	}
	result.State = FullyLinked
	log.Debug().Str("state", result.State.String()).Msg("Project phase complete")

	return result, nil
}

// checkPackage validates a link candidate and returns its absolute directory
// and declared package name.
func (s *Service) checkPackage(path string) (string, string, error) {
	dir, err := filepath.Abs(path)
	if err != nil {
		return "", "", linkerr.WrapValidation(err, "resolving path %s", path)
	}

	info, err := s.Fs.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", "", linkerr.Validation("path does not exist: %s", dir)
		}
		return "", "", linkerr.WrapValidation(err, "cannot access %s", dir)
	}
	if !info.IsDir() {
		return "", "", linkerr.Validation("not a directory: %s", dir)
	}

	data, err := manifest.ReadRaw(s.Fs, dir)
	if err != nil {
		if errors.Is(err, manifest.ErrNotFound) {
			return "", "", linkerr.Validation("%s not found in: %s", manifest.FileName, dir)
		}
		return "", "", linkerr.WrapValidation(err, "failed to read %s", manifest.FileName)
	}

	result, err := manifest.Validate(data)
	if err != nil {
		return "", "", linkerr.WrapValidation(err, "failed to read %s in %s", manifest.FileName, dir)
	}
	if !result.Valid {
		return "", "", linkerr.Validation("%s in %s does not declare a usable \"name\": %s", manifest.FileName, dir, result.Summary())
	}

	m, err := manifest.Parse(data, manifest.Path(dir))
	if err != nil {
		return "", "", linkerr.WrapValidation(err, "failed to read %s in %s", manifest.FileName, dir)
	}
	if err := registry.ValidateName(m.Name); err != nil {
		return "", "", err
	}

	return dir, m.Name, nil
}
