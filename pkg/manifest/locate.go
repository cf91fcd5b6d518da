package manifest

import (
	"os"
	"path/filepath"

	"github.com/smashah/workspace-updater/pkg/constants"
	"github.com/smashah/workspace-updater/pkg/errors"
	"github.com/smashah/workspace-updater/pkg/verbose"
)

// statFunc is swapped in tests to simulate filesystem states.
var statFunc = os.Stat

// CandidatePaths returns the probe list relative to baseDir: the directory itself,
// then one and two levels up.
//
// Parameters:
//   - baseDir: Directory to probe from; "." when empty
//
// Returns:
//   - []string: Candidate manifest paths in probe order
func CandidatePaths(baseDir string) []string {
	if baseDir == "" {
		baseDir = "."
	}
	return []string{
		filepath.Join(baseDir, constants.ManifestFileName),
		filepath.Join(baseDir, "..", constants.ManifestFileName),
		filepath.Join(baseDir, "..", "..", constants.ManifestFileName),
	}
}

// Locate resolves the manifest path.
//
// It performs the following operations:
//   - If explicit is set, verifies it exists and returns it unchanged
//   - Otherwise probes CandidatePaths(baseDir) in order and returns the first regular file
//
// Parameters:
//   - baseDir: Directory the probe starts from; "." when empty
//   - explicit: Path supplied with -w, bypassing discovery when non-empty
//
// Returns:
//   - string: The manifest path
//   - error: *errors.ManifestNotFoundError naming every checked path when nothing exists
func Locate(baseDir, explicit string) (string, error) {
	if explicit != "" {
		verbose.Printf("Using explicit manifest path %s", explicit)
		if !isFile(explicit) {
			return "", &errors.ManifestNotFoundError{Paths: []string{explicit}}
		}
		return explicit, nil
	}

	candidates := CandidatePaths(baseDir)
	for _, candidate := range candidates {
		verbose.Printf("Probing %s", candidate)
		if isFile(candidate) {
			return candidate, nil
		}
	}

	return "", &errors.ManifestNotFoundError{Paths: candidates}
}

func isFile(path string) bool {
	info, err := statFunc(path)
	return err == nil && !info.IsDir()
}
