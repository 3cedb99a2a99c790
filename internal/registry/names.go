package registry

import (
	"path/filepath"
	"strings"

	"github.com/bridged-dev/bridged/internal/linkerr"
)

// ScopePrefix marks a scope directory inside a registry.
const ScopePrefix = "@"

// SplitName validates a package name and splits a scoped name into its scope
// directory ("@scope") and leaf. Unscoped names return an empty scope.
//
// A scoped name must contain exactly one "/" with a non-empty scope and leaf.
// An unscoped name must contain no "/". Anything else is rejected rather than
// truncated, so a name never maps to an unexpected path. The name, or the
// leaf of a scoped name, may not start with "-", "." or "_".
func SplitName(name string) (scope, leaf string, err error) {
	if name == "" {
		return "", "", linkerr.Validation("package name is empty")
	}
	if strings.ContainsRune(name, '\\') {
		return "", "", linkerr.Validation("invalid package name %q: contains a backslash", name)
	}

	if !strings.HasPrefix(name, ScopePrefix) {
		if strings.Contains(name, "/") {
			return "", "", linkerr.Validation("invalid package name %q: only scoped names (@scope/name) may contain '/'", name)
		}
		if err := checkLeaf(name, name); err != nil {
			return "", "", err
		}
		return "", name, nil
	}

	parts := strings.Split(name, "/")
	if len(parts) != 2 {
		return "", "", linkerr.Validation("invalid scoped package name %q: expected @scope/name", name)
	}
	scope, leaf = parts[0], parts[1]
	if scope == ScopePrefix {
		return "", "", linkerr.Validation("invalid scoped package name %q: empty scope", name)
	}
	if leaf == "" {
		return "", "", linkerr.Validation("invalid scoped package name %q: empty name", name)
	}
	if scope == ScopePrefix+"." || scope == ScopePrefix+".." {
		return "", "", linkerr.Validation("invalid scoped package name %q", name)
	}
	if err := checkLeaf(name, leaf); err != nil {
		return "", "", err
	}
	return scope, leaf, nil
}

// checkLeaf rejects leaves npm would refuse to publish. A leading "-" would
// also be read as an option by the package manager.
func checkLeaf(name, leaf string) error {
	switch {
	case leaf == "." || leaf == "..":
		return linkerr.Validation("invalid package name %q", name)
	case strings.HasPrefix(leaf, "-"):
		return linkerr.Validation("invalid package name %q: cannot start with '-'", name)
	case strings.HasPrefix(leaf, "."):
		return linkerr.Validation("invalid package name %q: cannot start with '.'", name)
	case strings.HasPrefix(leaf, "_"):
		return linkerr.Validation("invalid package name %q: cannot start with '_'", name)
	}
	return nil
}

// ValidateName reports whether name is a well-formed package name.
func ValidateName(name string) error {
	_, _, err := SplitName(name)
	return err
}

// EntryPath returns where name's entry lives under a registry root.
func EntryPath(root, name string) (string, error) {
	scope, leaf, err := SplitName(name)
	if err != nil {
		return "", err
	}
	if scope == "" {
		return filepath.Join(root, leaf), nil
	}
	return filepath.Join(root, scope, leaf), nil
}
