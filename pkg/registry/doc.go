// Package registry resolves the latest published version of npm packages.
//
// Client talks to an npm-compatible registry; FetchLatest fans one lookup per
// dependency out concurrently and joins them before returning. A failed lookup is
// logged as a warning and reported as an empty version, never as an error:
//
//	client := registry.NewClient(constants.DefaultRegistry, 30*time.Second)
//	latest := registry.FetchLatest(ctx, client, []string{"react", "@types/node"})
//	// latest[i] == "" when names[i] could not be resolved
package registry
