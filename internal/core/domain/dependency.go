package domain

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/zerr"
)

// SatisfiesVersion reports whether candidate falls inside the range expressed
// by constraint. Ranges follow the npm grammar (caret, tilde, x-ranges, hyphen
// ranges, comparator sets joined by "||"). An unparsable candidate or
// constraint never matches.
//
// A pre-release candidate only matches an alternative that names a
// pre-release of the same major.minor.patch.
func SatisfiesVersion(candidate, constraint string) bool {
	if strings.TrimSpace(constraint) == "" {
		return false
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false
	}

	v, err := parseVersion(candidate)
	if err != nil {
		return false
	}

	if v.Prerelease() == "" {
		return c.Check(v)
	}

	for _, alt := range strings.Split(constraint, "||") {
		if !namesPrereleaseOf(alt, v) {
			continue
		}
		altConstraint, err := semver.NewConstraint(alt)
		if err != nil {
			return false
		}
		if altConstraint.Check(v) {
			return true
		}
	}
	return false
}

// namesPrereleaseOf reports whether a comparator of alt is a pre-release
// sharing the major.minor.patch of v.
func namesPrereleaseOf(alt string, v *semver.Version) bool {
	fields := strings.FieldsFunc(alt, func(r rune) bool { return r == ' ' || r == ',' })
	for _, field := range fields {
		bound, err := parseVersion(strings.TrimLeft(field, "^~<>=!"))
		if err != nil || bound.Prerelease() == "" {
			continue
		}
		if bound.Major() == v.Major() && bound.Minor() == v.Minor() && bound.Patch() == v.Patch() {
			return true
		}
	}
	return false
}

// parseVersion accepts major.minor.patch with optional pre-release and build
// metadata, and an optional leading "v".
func parseVersion(version string) (*semver.Version, error) {
	return semver.StrictNewVersion(strings.TrimPrefix(strings.TrimSpace(version), "v"))
}

// ValidateConstraint fails with ErrInvalidConstraint if constraint is empty
// or not a version range.
func ValidateConstraint(constraint string) error {
	if strings.TrimSpace(constraint) == "" {
		return zerr.With(ErrInvalidConstraint, "constraint", constraint)
	}
	if _, err := semver.NewConstraint(constraint); err != nil {
		return zerr.With(zerr.Wrap(err, ErrInvalidConstraint.Error()), "constraint", constraint)
	}
	return nil
}

// ValidateVersion fails with ErrInvalidVersion unless version is a complete
// major.minor.patch semantic version.
func ValidateVersion(version string) error {
	if _, err := parseVersion(version); err != nil {
		return zerr.With(zerr.Wrap(err, ErrInvalidVersion.Error()), "version", version)
	}
	return nil
}
