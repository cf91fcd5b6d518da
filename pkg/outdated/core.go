// Package outdated decides which catalog entries lag behind the registry and by
// which semver release type.
package outdated

import (
	"github.com/iancoleman/orderedmap"

	"github.com/smashah/workspace-updater/pkg/constants"
	"github.com/smashah/workspace-updater/pkg/verbose"
)

// Entry is an outdated catalog dependency.
//
// Fields:
//   - Name: The catalog key
//   - Current: The catalog value as written (e.g. "^1.2.3")
//   - Latest: The registry's latest version
//   - Delta: The release type from Current to Latest (constants.Release*)
type Entry struct {
	Name    string `json:"name"`
	Current string `json:"current"`
	Latest  string `json:"latest"`
	Delta   string `json:"delta"`
}

// UpdateSelectionFlags controls which release types an update applies.
type UpdateSelectionFlags struct {
	Major bool
	Minor bool
	Patch bool
}

// ReleaseTypes returns the selected release types, in major, minor, patch order.
// An empty result means no filter.
func (f UpdateSelectionFlags) ReleaseTypes() []string {
	var types []string
	if f.Major {
		types = append(types, constants.ReleaseMajor)
	}
	if f.Minor {
		types = append(types, constants.ReleaseMinor)
	}
	if f.Patch {
		types = append(types, constants.ReleasePatch)
	}
	return types
}

// Classify decides whether a catalog entry is outdated.
//
// It performs the following operations:
//   - Skips values that are not strings
//   - Skips pre-release values
//   - Normalizes the value to digits and dots and skips it unless it is a valid version
//   - Skips when latest is unknown, invalid, or not strictly greater
//   - Computes the release type between the normalized value and latest
//
// Parameters:
//   - name: The catalog key
//   - current: The catalog value (any decoded YAML scalar)
//   - latest: The registry's latest version; "" when the lookup failed
//
// Returns:
//   - Entry: The outdated entry
//   - bool: false when the entry is up to date or excluded
func Classify(name string, current any, latest string) (Entry, bool) {
	value, ok := current.(string)
	if !ok {
		verbose.Printf("%s: skipped, value %v is not a string", name, current)
		return Entry{}, false
	}

	if IsPrerelease(value) {
		verbose.Printf("%s: skipped, %s is a pre-release", name, value)
		return Entry{}, false
	}

	from, ok := parseVersion(Normalize(value))
	if !ok {
		verbose.Printf("%s: skipped, %q is not a valid version", name, value)
		return Entry{}, false
	}

	if latest == "" {
		return Entry{}, false
	}

	to, ok := parseVersion(latest)
	if !ok {
		verbose.Printf("%s: skipped, registry version %q is not valid", name, latest)
		return Entry{}, false
	}

	if compare(to, from) <= 0 {
		return Entry{}, false
	}

	return Entry{
		Name:    name,
		Current: value,
		Latest:  to.raw,
		Delta:   Diff(from, to),
	}, true
}

// Check classifies every catalog entry against its latest version.
//
// Parameters:
//   - catalog: The ordered catalog
//   - latest: latest[i] is the registry version of catalog.Keys()[i]; "" when unknown
//
// Returns:
//   - []Entry: Outdated entries in catalog order
func Check(catalog *orderedmap.OrderedMap, latest []string) []Entry {
	var entries []Entry
	for i, name := range catalog.Keys() {
		version := ""
		if i < len(latest) {
			version = latest[i]
		}

		current, _ := catalog.Get(name)
		if entry, ok := Classify(name, current, version); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}
