// Package constants provides centralized string constants used throughout the application.
// This eliminates magic strings and provides a single source of truth for release types,
// manifest locations and report messages.
package constants

// Release type constants name the semver delta between a catalog entry and the registry's latest version.
const (
	ReleaseMajor      = "major"
	ReleaseMinor      = "minor"
	ReleasePatch      = "patch"
	ReleasePremajor   = "premajor"
	ReleasePreminor   = "preminor"
	ReleasePrepatch   = "prepatch"
	ReleasePrerelease = "prerelease"

	// ReleaseNone means the versions are equal.
	ReleaseNone = "none"

	// ReleaseOther is the report bucket for any delta outside the canonical set.
	ReleaseOther = "other"
)

// ReleaseOrder is the fixed order in which report buckets are printed.
// ReleaseOther is always printed last.
var ReleaseOrder = []string{
	ReleaseMajor,
	ReleaseMinor,
	ReleasePatch,
	ReleasePremajor,
	ReleasePreminor,
	ReleasePrepatch,
	ReleasePrerelease,
}

// IsCanonicalRelease reports whether release is one of ReleaseOrder.
func IsCanonicalRelease(release string) bool {
	for _, r := range ReleaseOrder {
		if r == release {
			return true
		}
	}
	return false
}

// Manifest constants.
const (
	// ManifestFileName is the workspace manifest probed during discovery.
	ManifestFileName = "pnpm-workspace.yaml"

	// CatalogKey is the top-level manifest key holding the catalog.
	CatalogKey = "catalog"

	// CaretPrefix is the only range prefix preserved on update.
	CaretPrefix = "^"

	// DefaultRegistry is the npm registry queried for latest versions.
	DefaultRegistry = "https://registry.npmjs.org"
)

// Report messages.
const (
	MessageUpToDate  = "All catalog dependencies are up to date."
	MessageNoMatches = "No updates matched the selected release types."
)

// Icon constants for report headings.
const (
	IconUpdate = "📦"
	IconDone   = "✅"
)
