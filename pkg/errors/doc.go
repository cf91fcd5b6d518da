// Package errors provides the error types and exit codes used by workspace-updater.
//
// The package groups every failure the tool can report:
//   - ExitError: Command exit with a specific exit code
//   - ManifestNotFoundError: No manifest at the explicit or probed paths
//   - ManifestParseError: Manifest content is not a valid workspace document
//   - RegistryLookupError: A single dependency could not be resolved (non-fatal)
//   - WriteError: The updated manifest could not be persisted
//
// Error Checking:
//
// Use errors.As from the standard library, or the Is* helpers:
//
//	if exitErr, ok := errors.IsExitError(err); ok {
//	    os.Exit(exitErr.Code)
//	}
//
// Exit Codes:
//   - ExitSuccess (0): The run completed, whatever the number of outdated entries
//   - ExitFailure (1): A fatal error stopped the run
package errors
