// Package update applies outdated entries back to the workspace manifest.
//
// Apply mutates the in-memory manifest only; WriteManifest persists it with an
// atomic temp-file-and-rename write that keeps the file's mode and owner.
package update

import (
	"strings"

	"github.com/smashah/workspace-updater/pkg/constants"
	"github.com/smashah/workspace-updater/pkg/manifest"
	"github.com/smashah/workspace-updater/pkg/outdated"
	"github.com/smashah/workspace-updater/pkg/verbose"
)

// Change records one rewritten catalog entry.
type Change struct {
	Name string `json:"name"`
	From string `json:"from"`
	To   string `json:"to"`
}

// Eligible reports whether an entry passes the release-type filters.
//
// An empty filter list accepts everything. Otherwise the entry's delta must
// equal one of the filters exactly, so "major" never selects "premajor".
func Eligible(entry outdated.Entry, filters []string) bool {
	if len(filters) == 0 {
		return true
	}
	for _, filter := range filters {
		if entry.Delta == filter {
			return true
		}
	}
	return false
}

// TargetValue returns the value written for latest, keeping a leading caret.
//
// Any other range prefix in current ("~", ">=") is dropped and latest is
// written verbatim.
func TargetValue(current, latest string) string {
	if strings.HasPrefix(current, constants.CaretPrefix) {
		return constants.CaretPrefix + latest
	}
	return latest
}

// Plan returns the changes Apply would make without touching the manifest.
//
// Parameters:
//   - m: The loaded manifest
//   - entries: Outdated entries in catalog order
//   - filters: Requested release types; empty means all
//
// Returns:
//   - []Change: Planned changes in entry order
func Plan(m *manifest.Manifest, entries []outdated.Entry, filters []string) []Change {
	var changes []Change
	for _, entry := range entries {
		if !Eligible(entry, filters) {
			continue
		}

		current, ok := m.Catalog.Get(entry.Name)
		if !ok {
			verbose.Printf("%s: no longer in catalog, not updated", entry.Name)
			continue
		}
		from, _ := current.(string)

		changes = append(changes, Change{
			Name: entry.Name,
			From: from,
			To:   TargetValue(from, entry.Latest),
		})
	}
	return changes
}

// Apply rewrites eligible catalog entries in memory.
//
// It performs the following operations:
//   - Filters entries by release type
//   - Skips entries no longer present in the catalog
//   - Sets each remaining entry to its target value on both the ordered
//     catalog and the YAML document
//
// No entry is ever added or removed. The manifest is not written.
//
// Parameters:
//   - m: The loaded manifest
//   - entries: Outdated entries in catalog order
//   - filters: Requested release types; empty means all
//
// Returns:
//   - []Change: Applied changes in entry order; empty when nothing was eligible
func Apply(m *manifest.Manifest, entries []outdated.Entry, filters []string) []Change {
	planned := Plan(m, entries, filters)
	applied := make([]Change, 0, len(planned))
	for _, change := range planned {
		if !m.Set(change.Name, change.To) {
			continue
		}
		verbose.Printf("%s: %s -> %s", change.Name, change.From, change.To)
		applied = append(applied, change)
	}
	return applied
}
