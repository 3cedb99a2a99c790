package runtime

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// SatisfiesConstraint reports whether version meets constraint, e.g.
// SatisfiesConstraint("10.2.4", ">= 7.0.0").
func SatisfiesConstraint(version, constraint string) (bool, error) {
	v, err := ParseVersion(version)
	if err != nil {
		return false, fmt.Errorf("parsing version %q: %w", version, err)
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("parsing constraint %q: %w", constraint, err)
	}
	return c.Check(v), nil
}

// ParseVersion strips a leading "v" and parses the version string.
func ParseVersion(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(strings.TrimSpace(version), "v")
	return semver.NewVersion(version)
}
