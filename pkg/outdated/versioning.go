package outdated

import (
	"strings"

	mmsemver "github.com/Masterminds/semver/v3"
	"golang.org/x/mod/semver"

	"github.com/smashah/workspace-updater/pkg/constants"
)

// parsedVersion is a strictly valid MAJOR.MINOR.PATCH[-PRERELEASE] version.
//
// Fields:
//   - raw: The version string as parsed
//   - canonical: The x/mod/semver form ("v" + raw) used for precedence
//   - parts: Numeric and prerelease components
type parsedVersion struct {
	raw       string
	canonical string
	parts     *mmsemver.Version
}

// parseVersion parses a strict semantic version.
//
// It performs the following operations:
//   - Trims whitespace
//   - Requires all three numeric components and no leading "v"
//   - Cross-checks the canonical form with x/mod/semver
//
// Parameters:
//   - version: The version string to parse (e.g. "1.2.3", "2.0.0-rc.1")
//
// Returns:
//   - parsedVersion: The parsed version
//   - bool: false when the version is not valid semver
func parseVersion(version string) (parsedVersion, bool) {
	cleaned := strings.TrimSpace(version)
	if cleaned == "" {
		return parsedVersion{}, false
	}

	parts, err := mmsemver.StrictNewVersion(cleaned)
	if err != nil {
		return parsedVersion{}, false
	}

	canonical := "v" + cleaned
	if !semver.IsValid(canonical) {
		return parsedVersion{}, false
	}

	return parsedVersion{raw: cleaned, canonical: canonical, parts: parts}, true
}

// compare orders two versions by semver precedence; build metadata is ignored.
//
// Returns:
//   - int: Negative if a < b, zero if a == b, positive if a > b
func compare(a, b parsedVersion) int {
	return semver.Compare(a.canonical, b.canonical)
}

// Normalize strips every character except digits and dots from a version range.
//
// This turns "^1.2.3" and "~1.2.3" into "1.2.3". It is a best-effort heuristic:
// ">=1.2.3 <2.0.0" becomes "1.2.3.2.0.0" and "workspace:*" becomes "", both of
// which then fail validation and are skipped.
//
// Parameters:
//   - current: The catalog value
//
// Returns:
//   - string: The digits-and-dots remainder
func Normalize(current string) string {
	var b strings.Builder
	b.Grow(len(current))
	for _, r := range current {
		if isDigit(r) || r == '.' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsPrerelease reports whether a catalog value pins a pre-release version.
//
// Leading range operators and a "v" prefix are dropped before parsing, so
// "^2.0.0-beta.1" counts as a pre-release while "^2.0.0" does not.
//
// Parameters:
//   - current: The catalog value
//
// Returns:
//   - bool: true if the value parses as a version with a prerelease segment
func IsPrerelease(current string) bool {
	trimmed := strings.TrimLeftFunc(strings.TrimSpace(current), func(r rune) bool {
		return !isDigit(r)
	})
	if trimmed == "" {
		return false
	}

	v, err := mmsemver.NewVersion(trimmed)
	if err != nil {
		return false
	}
	return v.Prerelease() != ""
}

// Diff returns the release type separating two versions.
//
// It performs the following operations:
//   - Orders the pair so the comparison runs from the lower to the higher version
//   - Special-cases moving from a prerelease to its release
//   - Prefixes "pre" when the higher version is itself a prerelease
//   - Reports the first differing component, or prerelease when only the tag differs
//
// Parameters:
//   - a: First version
//   - b: Second version
//
// Returns:
//   - string: One of the constants.Release* values; ReleaseNone when equal
func Diff(a, b parsedVersion) string {
	comparison := compare(a, b)
	if comparison == 0 {
		return constants.ReleaseNone
	}

	high, low := b, a
	if comparison > 0 {
		high, low = a, b
	}
	highHasPre := high.parts.Prerelease() != ""
	lowHasPre := low.parts.Prerelease() != ""

	if lowHasPre && !highHasPre {
		if low.parts.Patch() == 0 && low.parts.Minor() == 0 {
			return constants.ReleaseMajor
		}
		if sameCore(low, high) {
			if low.parts.Minor() != 0 && low.parts.Patch() == 0 {
				return constants.ReleaseMinor
			}
			return constants.ReleasePatch
		}
	}

	prefix := ""
	if highHasPre {
		prefix = "pre"
	}

	switch {
	case a.parts.Major() != b.parts.Major():
		return prefix + constants.ReleaseMajor
	case a.parts.Minor() != b.parts.Minor():
		return prefix + constants.ReleaseMinor
	case a.parts.Patch() != b.parts.Patch():
		return prefix + constants.ReleasePatch
	default:
		return constants.ReleasePrerelease
	}
}

func sameCore(a, b parsedVersion) bool {
	return a.parts.Major() == b.parts.Major() &&
		a.parts.Minor() == b.parts.Minor() &&
		a.parts.Patch() == b.parts.Patch()
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
