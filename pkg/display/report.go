package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/smashah/workspace-updater/pkg/constants"
	"github.com/smashah/workspace-updater/pkg/outdated"
)

// sectionTitles maps release types to report headings.
var sectionTitles = map[string]string{
	constants.ReleaseMajor:      "Major",
	constants.ReleaseMinor:      "Minor",
	constants.ReleasePatch:      "Patch",
	constants.ReleasePremajor:   "Pre-major",
	constants.ReleasePreminor:   "Pre-minor",
	constants.ReleasePrepatch:   "Pre-patch",
	constants.ReleasePrerelease: "Prerelease",
	constants.ReleaseOther:      "Other",
}

// GroupByRelease partitions entries into buckets keyed by release type.
//
// Any delta outside the canonical release set is put in the constants.ReleaseOther
// bucket. Order within a bucket follows the input order.
//
// Parameters:
//   - entries: Outdated entries in catalog order
//
// Returns:
//   - map[string][]outdated.Entry: Buckets keyed by release type
func GroupByRelease(entries []outdated.Entry) map[string][]outdated.Entry {
	buckets := make(map[string][]outdated.Entry)
	for _, entry := range entries {
		key := entry.Delta
		if !constants.IsCanonicalRelease(key) {
			key = constants.ReleaseOther
		}
		buckets[key] = append(buckets[key], entry)
	}
	return buckets
}

// PrintReport prints the grouped outdated report.
//
// It performs the following operations:
//   - Prints a single up-to-date message when there are no entries
//   - Otherwise prints one section per non-empty bucket in constants.ReleaseOrder,
//     followed by the Other bucket
//   - Each entry is printed as "name: current -> latest"
//
// Parameters:
//   - w: Writer to output to (typically os.Stdout)
//   - entries: Outdated entries in catalog order
func PrintReport(w io.Writer, entries []outdated.Entry) {
	if len(entries) == 0 {
		_, _ = fmt.Fprintf(w, "%s %s\n", constants.IconDone, constants.MessageUpToDate)
		return
	}

	buckets := GroupByRelease(entries)
	order := append(append([]string(nil), constants.ReleaseOrder...), constants.ReleaseOther)

	first := true
	for _, release := range order {
		bucket := buckets[release]
		if len(bucket) == 0 {
			continue
		}
		if !first {
			_, _ = fmt.Fprintln(w)
		}
		first = false

		printSection(w, sectionTitles[release], bucket)
	}
}

func printSection(w io.Writer, title string, bucket []outdated.Entry) {
	heading := fmt.Sprintf("%s %s updates (%d)", constants.IconUpdate, title, len(bucket))
	_, _ = fmt.Fprintln(w, heading)
	_, _ = fmt.Fprintln(w, rule(heading))
	for _, entry := range bucket {
		_, _ = fmt.Fprintf(w, "  %s\n", FormatEntry(entry))
	}
}

// FormatEntry renders one entry as "name: current -> latest".
func FormatEntry(entry outdated.Entry) string {
	return fmt.Sprintf("%s: %s -> %s", entry.Name, entry.Current, entry.Latest)
}

// rule underlines heading; emoji count as two cells.
func rule(heading string) string {
	return strings.Repeat("─", runewidth.StringWidth(heading))
}
