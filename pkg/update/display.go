package update

import (
	"fmt"
	"io"

	"github.com/smashah/workspace-updater/pkg/constants"
)

// PrintPlan prints the changes a dry run would write.
func PrintPlan(w io.Writer, path string, changes []Change) {
	if len(changes) == 0 {
		_, _ = fmt.Fprintln(w, constants.MessageNoMatches)
		return
	}

	_, _ = fmt.Fprintf(w, "Dry run: would update %s in %s\n", pluralEntries(len(changes)), path)
	printChanges(w, changes)
}

// PrintSummary prints the result of an update.
//
// Parameters:
//   - w: Writer to output to
//   - path: The manifest that was written
//   - changes: Applied changes; empty means nothing was written
func PrintSummary(w io.Writer, path string, changes []Change) {
	if len(changes) == 0 {
		_, _ = fmt.Fprintln(w, constants.MessageNoMatches)
		return
	}

	_, _ = fmt.Fprintf(w, "%s Updated %s in %s\n", constants.IconDone, pluralEntries(len(changes)), path)
	printChanges(w, changes)
}

func printChanges(w io.Writer, changes []Change) {
	for _, change := range changes {
		_, _ = fmt.Fprintf(w, "  %s: %s -> %s\n", change.Name, change.From, change.To)
	}
}

func pluralEntries(n int) string {
	if n == 1 {
		return "1 catalog entry"
	}
	return fmt.Sprintf("%d catalog entries", n)
}
