// Package semver wraps github.com/Masterminds/semver/v3 with the npm flavour
// of version parsing, range matching and increments used by npmversion.
package semver

import (
	"fmt"
	"strings"

	mm "github.com/Masterminds/semver/v3"
)

// InvalidVersionError reports a string that is not a strict semantic version.
type InvalidVersionError struct {
	Version string
	Err     error
}

func (e *InvalidVersionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("semver: invalid version %q: %v", e.Version, e.Err)
	}
	return fmt.Sprintf("semver: invalid version %q", e.Version)
}

func (e *InvalidVersionError) Unwrap() error {
	return e.Err
}

// Version is a parsed semantic version.
type Version struct {
	v *mm.Version
}

// Constraint is an npm-style range such as "^1.2.0", "1.x", ">=1 <2" or "*".
type Constraint struct {
	c *mm.Constraints
}

// ParseVersion parses raw strictly. A single leading "=" or "v" is accepted,
// as npm does.
func ParseVersion(raw string) (Version, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "=")
	cleaned = strings.TrimPrefix(cleaned, "v")
	v, err := mm.StrictNewVersion(cleaned)
	if err != nil {
		return Version{}, &InvalidVersionError{Version: raw, Err: err}
	}
	return Version{v: v}, nil
}

// ParseConstraint parses an npm range. An empty range means "*".
func ParseConstraint(raw string) (Constraint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = "*"
	}
	c, err := mm.NewConstraint(raw)
	if err != nil {
		return Constraint{}, fmt.Errorf("semver: parse constraint %q: %w", raw, err)
	}
	return Constraint{c: c}, nil
}

// String returns the canonical form without a "v" prefix.
func (v Version) String() string {
	if v.v == nil {
		return ""
	}
	return v.v.String()
}

// Prerelease returns the prerelease identifiers, or nil.
func (v Version) Prerelease() []string {
	if v.v == nil || v.v.Prerelease() == "" {
		return nil
	}
	return strings.Split(v.v.Prerelease(), ".")
}

// Check reports whether v falls within c.
func (c Constraint) Check(v Version) bool {
	if v.v == nil || c.c == nil {
		return false
	}
	return c.c.Check(v.v)
}

// Satisfies reports whether version lies within rng. Malformed input on
// either side yields false.
func Satisfies(version, rng string) bool {
	c, err := ParseConstraint(rng)
	if err != nil {
		return false
	}
	v, err := ParseVersion(version)
	if err != nil {
		return false
	}
	return c.Check(v)
}
