package output

import (
	"encoding/xml"

	"github.com/smashah/workspace-updater/pkg/outdated"
	"github.com/smashah/workspace-updater/pkg/update"
)

// CatalogReport is the structured form of one audit or update run.
//
// Fields:
//   - Manifest: Path of the workspace manifest
//   - Summary: Counts of outdated and updated entries
//   - Outdated: Outdated entries in catalog order
//   - Updates: Changes written (or planned, for a dry run)
type CatalogReport struct {
	XMLName  xml.Name        `json:"-" xml:"catalogReport"`
	Manifest string          `json:"manifest" xml:"manifest"`
	Summary  ReportSummary   `json:"summary" xml:"summary"`
	Outdated []OutdatedEntry `json:"outdated" xml:"outdated>entry"`
	Updates  []UpdatedEntry  `json:"updates,omitempty" xml:"updates>update,omitempty"`
}

// ReportSummary holds counts for a catalog report.
//
// Fields:
//   - Outdated: Number of outdated entries
//   - Updated: Number of entries written
//   - Planned: Number of entries a dry run would write
//   - DryRun: Whether updates were only planned
type ReportSummary struct {
	Outdated int  `json:"outdated" xml:"outdated"`
	Updated  int  `json:"updated" xml:"updated"`
	Planned  int  `json:"planned,omitempty" xml:"planned,omitempty"`
	DryRun   bool `json:"dry_run,omitempty" xml:"dryRun,omitempty"`
}

// OutdatedEntry is one outdated catalog dependency.
type OutdatedEntry struct {
	Name    string `json:"name" xml:"name"`
	Current string `json:"current" xml:"current"`
	Latest  string `json:"latest" xml:"latest"`
	Delta   string `json:"delta" xml:"delta"`
}

// UpdatedEntry is one rewritten catalog value.
type UpdatedEntry struct {
	Name string `json:"name" xml:"name"`
	From string `json:"from" xml:"from"`
	To   string `json:"to" xml:"to"`
}

// NewCatalogReport assembles a report from classified entries and applied changes.
//
// Parameters:
//   - manifest: Path of the workspace manifest
//   - entries: Outdated entries in catalog order
//   - changes: Written or planned changes
//   - dryRun: true when changes were only planned
//
// Returns:
//   - *CatalogReport: The assembled report; Outdated is never nil
func NewCatalogReport(manifest string, entries []outdated.Entry, changes []update.Change, dryRun bool) *CatalogReport {
	report := &CatalogReport{
		Manifest: manifest,
		Outdated: make([]OutdatedEntry, 0, len(entries)),
	}

	for _, e := range entries {
		report.Outdated = append(report.Outdated, OutdatedEntry{Name: e.Name, Current: e.Current, Latest: e.Latest, Delta: e.Delta})
	}
	for _, c := range changes {
		report.Updates = append(report.Updates, UpdatedEntry{Name: c.Name, From: c.From, To: c.To})
	}

	report.Summary.Outdated = len(entries)
	if dryRun {
		report.Summary.DryRun = true
		report.Summary.Planned = len(changes)
	} else {
		report.Summary.Updated = len(changes)
	}

	return report
}

func (r *CatalogReport) csvHeaders() []string {
	return []string{"NAME", "CURRENT", "LATEST", "DELTA", "UPDATED_TO"}
}

// csvRows emits one row per outdated entry; UPDATED_TO is blank unless the
// entry was written or planned.
func (r *CatalogReport) csvRows() [][]string {
	updatedTo := make(map[string]string, len(r.Updates))
	for _, u := range r.Updates {
		updatedTo[u.Name] = u.To
	}

	rows := make([][]string, 0, len(r.Outdated))
	for _, e := range r.Outdated {
		rows = append(rows, []string{e.Name, e.Current, e.Latest, e.Delta, updatedTo[e.Name]})
	}
	return rows
}
