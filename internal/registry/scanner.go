package registry

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/bridged-dev/bridged/internal/manifest"
	"github.com/bridged-dev/bridged/internal/platform"
	"github.com/spf13/afero"
)

// Outcome is the result of inspecting one registry entry.
type Outcome int

const (
	// Found is a symlinked package.
	Found Outcome = iota
	// Excluded is an entry that is not a linked package (a regular install,
	// a stray file).
	Excluded
	// Unreadable is an entry that could not be inspected.
	Unreadable
)

// String returns a short label for the outcome.
func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case Excluded:
		return "excluded"
	case Unreadable:
		return "unreadable"
	default:
		return "unknown"
	}
}

// Entry records what happened to one path during a walk.
type Entry struct {
	Name    string
	Path    string
	Outcome Outcome
	Package LinkedPackage // set when Outcome == Found
	Err     error         // set when Outcome == Unreadable
}

// Scanner enumerates a registry root. The zero value is not usable; use
// NewScanner or set both fields.
type Scanner struct {
	Fs    afero.Fs
	Canon platform.Canonicalizer
}

// NewScanner returns a Scanner over the OS filesystem.
func NewScanner() *Scanner {
	return &Scanner{Fs: afero.NewOsFs(), Canon: platform.EvalSymlinks}
}

// Scan returns the linked packages under root. A missing or unreadable root
// yields an empty result. Order is unspecified.
func (s *Scanner) Scan(root string) []LinkedPackage {
	var packages []LinkedPackage
	for _, e := range s.Walk(root) {
		if e.Outcome == Found {
			packages = append(packages, e.Package)
		}
	}
	return packages
}

// Walk inspects every candidate under root and reports each outcome.
// A missing root yields no entries; a root that exists but cannot be listed
// yields a single Unreadable entry for the root itself.
func (s *Scanner) Walk(root string) []Entry {
	children, err := afero.ReadDir(s.Fs, root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return []Entry{{Path: root, Outcome: Unreadable, Err: err}}
	}

	var entries []Entry
	for _, child := range children {
		path := filepath.Join(root, child.Name())
		if !isDirOrLink(child) {
			entries = append(entries, Entry{Name: child.Name(), Path: path, Outcome: Excluded})
			continue
		}
		if strings.HasPrefix(child.Name(), ScopePrefix) {
			entries = append(entries, s.walkScope(path, child.Name())...)
			continue
		}
		entries = append(entries, s.inspect(path, child.Name(), child))
	}
	return entries
}

// walkScope inspects the packages one level below a scope directory.
func (s *Scanner) walkScope(scopePath, scope string) []Entry {
	children, err := afero.ReadDir(s.Fs, scopePath)
	if err != nil {
		return []Entry{{Name: scope, Path: scopePath, Outcome: Unreadable, Err: err}}
	}

	entries := make([]Entry, 0, len(children))
	for _, child := range children {
		path := filepath.Join(scopePath, child.Name())
		name := scope + "/" + child.Name()
		if !isDirOrLink(child) {
			entries = append(entries, Entry{Name: name, Path: path, Outcome: Excluded})
			continue
		}
		entries = append(entries, s.inspect(path, name, child))
	}
	return entries
}

// inspect classifies one candidate. info comes from the directory listing and
// is not followed through symlinks.
func (s *Scanner) inspect(path, name string, info os.FileInfo) Entry {
	entry := Entry{Name: name, Path: path}
	if info.Mode()&os.ModeSymlink == 0 {
		entry.Outcome = Excluded
		return entry
	}

	target, err := platform.ResolveSymlink(s.Fs, path, s.Canon)
	if err != nil {
		entry.Outcome = Unreadable
		entry.Err = err
		return entry
	}

	entry.Outcome = Found
	entry.Package = LinkedPackage{
		Name:    name,
		Target:  target,
		Version: manifest.ReadVersion(s.Fs, target),
	}
	return entry
}

func isDirOrLink(info os.FileInfo) bool {
	return info.IsDir() || info.Mode()&os.ModeSymlink != 0
}

// Find returns the package named name from packages.
func Find(packages []LinkedPackage, name string) (LinkedPackage, bool) {
	for _, p := range packages {
		if p.Name == name {
			return p, true
		}
	}
	return LinkedPackage{}, false
}
