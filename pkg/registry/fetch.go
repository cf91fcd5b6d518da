package registry

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/smashah/workspace-updater/pkg/errors"
	"github.com/smashah/workspace-updater/pkg/warnings"
)

// FetchLatest resolves the latest version of every name concurrently.
//
// It performs the following operations:
//   - Starts one goroutine per name; each writes only its own result slot
//   - Logs a warning for every failed lookup and leaves that slot empty
//   - Waits for all lookups before returning
//
// Parameters:
//   - ctx: Context passed to every lookup
//   - fetcher: The registry client
//   - names: Dependency names in catalog order
//
// Returns:
//   - []string: latest[i] is the version for names[i], or "" when unknown
func FetchLatest(ctx context.Context, fetcher LatestFetcher, names []string) []string {
	latest := make([]string, len(names))

	var g errgroup.Group
	for i, name := range names {
		g.Go(func() error {
			version, err := fetcher.Latest(ctx, name)
			if err != nil {
				warnings.Warnf("%v", &errors.RegistryLookupError{Name: name, Err: err})
				return nil
			}
			latest[i] = version
			return nil
		})
	}
	_ = g.Wait()

	return latest
}
