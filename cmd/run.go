package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/smashah/workspace-updater/pkg/constants"
	"github.com/smashah/workspace-updater/pkg/display"
	"github.com/smashah/workspace-updater/pkg/manifest"
	"github.com/smashah/workspace-updater/pkg/outdated"
	"github.com/smashah/workspace-updater/pkg/output"
	"github.com/smashah/workspace-updater/pkg/registry"
	"github.com/smashah/workspace-updater/pkg/update"
	"github.com/smashah/workspace-updater/pkg/verbose"
)

var getwdFunc = os.Getwd

// Options holds the settings for one audit or update run.
//
// Fields:
//   - Workspace: Explicit manifest path; empty means search from BaseDir
//   - BaseDir: Directory the search starts from; empty means the working directory
//   - Update: Write outdated entries back to the manifest
//   - Major, Minor, Patch: Exact release types to update; none means all
//   - DryRun: With Update, print the planned changes instead of writing
//   - Registry: npm registry base URL
//   - Timeout: Per-request registry timeout
//   - Output: Report format (table, json, csv, xml)
//   - Verbose: Debug logging
type Options struct {
	Workspace string
	BaseDir   string
	Update    bool
	Major     bool
	Minor     bool
	Patch     bool
	DryRun    bool
	Registry  string
	Timeout   time.Duration
	Output    string
	Verbose   bool
}

func defaultOptions() Options {
	return Options{
		Registry: constants.DefaultRegistry,
		Timeout:  registry.DefaultTimeout,
		Output:   string(output.FormatTable),
	}
}

// Selection returns the release-type flags as update selection flags.
func (o Options) Selection() outdated.UpdateSelectionFlags {
	return outdated.UpdateSelectionFlags{Major: o.Major, Minor: o.Minor, Patch: o.Patch}
}

// Filters returns the requested release types; empty means no filter.
func (o Options) Filters() []string {
	return o.Selection().ReleaseTypes()
}

// Run audits the workspace catalog and, if requested, applies updates.
//
// It performs the following operations:
//   - Locates and parses the manifest
//   - Fetches the latest version of every catalog entry concurrently
//   - Classifies outdated entries and prints the grouped report
//   - With Update, applies the filtered changes and writes the manifest once
//   - For structured formats, emits one document after any update instead of text
//
// Registry failures for single entries are logged as warnings and do not fail
// the run. The report is always printed before any write is attempted.
//
// Parameters:
//   - ctx: Context for registry requests
//   - opts: Run settings
//   - out: Writer for the report and update summary
//
// Returns:
//   - error: Locate, parse or write failures
func Run(ctx context.Context, opts Options, out io.Writer) error {
	format, err := output.ParseFormat(opts.Output)
	if err != nil {
		return err
	}

	baseDir := opts.BaseDir
	if baseDir == "" && opts.Workspace == "" {
		wd, err := getwdFunc()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		baseDir = wd
	}

	path, err := manifest.Locate(baseDir, opts.Workspace)
	if err != nil {
		return err
	}
	verbose.Printf("Using manifest %s", path)

	m, err := manifest.Load(path)
	if err != nil {
		return err
	}

	client := registry.NewClient(opts.Registry, opts.Timeout)
	names := m.Catalog.Keys()
	verbose.Printf("Checking %d catalog entries against %s", len(names), client.BaseURL())

	latest := registry.FetchLatest(ctx, client, names)
	entries := outdated.Check(m.Catalog, latest)

	structured := output.IsStructuredFormat(format)
	if !structured {
		display.PrintReport(out, entries)
	}

	var changes []update.Change
	if opts.Update && len(entries) > 0 {
		changes, err = applyUpdates(m, entries, opts, out, structured)
		if err != nil {
			return err
		}
	}

	if structured {
		report := output.NewCatalogReport(path, entries, changes, opts.Update && opts.DryRun)
		return output.NewFormatter(format, out).WriteReport(report)
	}

	return nil
}

// applyUpdates applies or plans the filtered changes and writes the manifest
// at most once. Text summaries are skipped when quiet is set.
func applyUpdates(m *manifest.Manifest, entries []outdated.Entry, opts Options, out io.Writer, quiet bool) ([]update.Change, error) {
	filters := opts.Filters()

	if opts.DryRun {
		changes := update.Plan(m, entries, filters)
		if !quiet {
			_, _ = fmt.Fprintln(out)
			update.PrintPlan(out, m.Path, changes)
		}
		return changes, nil
	}

	changes := update.Apply(m, entries, filters)
	if len(changes) > 0 {
		if err := update.WriteManifest(m); err != nil {
			return nil, err
		}
	}

	if !quiet {
		_, _ = fmt.Fprintln(out)
		update.PrintSummary(out, m.Path, changes)
	}
	return changes, nil
}
