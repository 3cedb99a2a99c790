package linker

import (
	"context"
	"errors"
	"os"

	"github.com/bridged-dev/bridged/internal/linkerr"
	"github.com/bridged-dev/bridged/internal/platform"
	"github.com/bridged-dev/bridged/internal/registry"
)

// RemovalState is the outcome of unlinking from one registry.
type RemovalState int

const (
	// Untouched means no removal was attempted in this registry.
	Untouched RemovalState = iota
	// Removed means the symlink was deleted.
	Removed
	// Missing means the symlink had already disappeared at removal time.
	Missing
	// Failed means removal was attempted and failed.
	Failed
)

// String returns a short label for the state.
func (s RemovalState) String() string {
	switch s {
	case Untouched:
		return "untouched"
	case Removed:
		return "removed"
	case Missing:
		return "missing"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Removal records what happened in one registry.
type Removal struct {
	State RemovalState
	Path  string
	Err   error
}

// UnlinkResult reports the outcome of Unlink.
type UnlinkResult struct {
	Name   string
	Local  Removal
	Global Removal
}

// LocalRemoved reports whether the local symlink was deleted.
func (r *UnlinkResult) LocalRemoved() bool { return r.Local.State == Removed }

// GlobalRemoved reports whether the global symlink was deleted.
func (r *UnlinkResult) GlobalRemoved() bool { return r.Global.State == Removed }

// AnyRemoved reports whether at least one symlink was deleted.
func (r *UnlinkResult) AnyRemoved() bool { return r.LocalRemoved() || r.GlobalRemoved() }

func (r *UnlinkResult) removal(k registry.Kind) *Removal {
	if k == registry.Global {
		return &r.Global
	}
	return &r.Local
}

// Unlink removes the symlinks for name from the registries selected by loc.
//
// The name is validated first. Both registries are then scanned; when neither
// has the package a not-linked error is returned and nothing is touched. Each
// selected registry holding the package has exactly its entry removed. An
// entry that vanished before removal counts as not removed. Under Auto a
// failed removal is recorded in the result and the call still succeeds; with
// an explicit location it is returned as an error.
func (s *Service) Unlink(ctx context.Context, name string, loc registry.Location) (*UnlinkResult, error) {
	if err := registry.ValidateName(name); err != nil {
		return nil, err
	}

	log := s.logger.With().Str("package", name).Str("location", loc.String()).Logger()

	roots := map[registry.Kind]registry.Root{}
	matched := map[registry.Kind]bool{}

	localRoot, localErr := s.Locator.LocalRoot()
	if localErr == nil {
		roots[registry.Local] = localRoot
		_, matched[registry.Local] = registry.Find(s.Scanner.Scan(localRoot.Path), name)
	} else if loc == registry.LocalOnly {
		return nil, localErr
	}

	globalRoot, globalErr := s.Locator.GlobalRoot(ctx)
	if globalErr == nil {
		roots[registry.Global] = globalRoot
		_, matched[registry.Global] = registry.Find(s.Scanner.Scan(globalRoot.Path), name)
	} else if loc == registry.GlobalOnly {
		return nil, globalErr
	} else {
		log.Debug().Err(globalErr).Msg("Global registry unavailable; treating it as empty")
	}

	if !matched[registry.Local] && !matched[registry.Global] {
		return nil, linkerr.NotLinked(name)
	}

	result := &UnlinkResult{Name: name}
	for _, kind := range []registry.Kind{registry.Local, registry.Global} {
		if !loc.Includes(kind) || !matched[kind] {
			continue
		}

		removal := result.removal(kind)
		*removal = s.remove(roots[kind].Path, name)
		log.Debug().
			Str("registry", kind.String()).
			Str("path", removal.Path).
			Str("state", removal.State.String()).
			Msg("Removal attempted")

		if removal.State == Failed && loc != registry.Auto {
			return result, linkerr.Remove(kind.String(), name, removal.Err)
		}
	}

	return result, nil
}

// remove deletes the single registry entry for name under root.
func (s *Service) remove(root, name string) Removal {
	path, err := registry.EntryPath(root, name)
	if err != nil {
		return Removal{State: Failed, Err: err}
	}

	err = platform.RemoveSymlink(s.Fs, path)
	switch {
	case err == nil:
		return Removal{State: Removed, Path: path}
	case errors.Is(err, os.ErrNotExist):
		return Removal{State: Missing, Path: path}
	default:
		return Removal{State: Failed, Path: path, Err: err}
	}
}
