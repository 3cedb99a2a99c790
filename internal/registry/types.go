package registry

import (
	"strings"

	"github.com/bridged-dev/bridged/internal/linkerr"
)

// Kind identifies which registry a root or record belongs to.
type Kind int

const (
	// Local is the registry in the current project's dependency store.
	Local Kind = iota
	// Global is the package manager's system-wide install root.
	Global
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case Local:
		return "local"
	case Global:
		return "global"
	default:
		return "unknown"
	}
}

// Root is the location of one registry. It is recomputed on every call.
type Root struct {
	Kind Kind
	Path string
}

// LinkedPackage is a symlinked registry entry.
type LinkedPackage struct {
	Name    string `json:"name"`    // "leaf" or "@scope/leaf"
	Target  string `json:"target"`  // absolute, canonical when resolvable
	Version string `json:"version"` // "unknown" when undeterminable
}

// Location selects which registries an unlink touches.
type Location int

const (
	// Auto removes from every registry where the package is linked.
	Auto Location = iota
	// LocalOnly removes from the local registry only.
	LocalOnly
	// GlobalOnly removes from the global registry only.
	GlobalOnly
)

// String returns the CLI spelling of the location.
func (l Location) String() string {
	switch l {
	case LocalOnly:
		return "local"
	case GlobalOnly:
		return "global"
	default:
		return "auto"
	}
}

// Includes reports whether the location covers registry kind k.
func (l Location) Includes(k Kind) bool {
	switch l {
	case LocalOnly:
		return k == Local
	case GlobalOnly:
		return k == Global
	default:
		return true
	}
}

// ParseLocation parses "local", "global", "auto" or "" (auto).
func ParseLocation(s string) (Location, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return Auto, nil
	case "local":
		return LocalOnly, nil
	case "global":
		return GlobalOnly, nil
	default:
		return Auto, linkerr.Validation("invalid location %q: expected local, global or auto", s)
	}
}
