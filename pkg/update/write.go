package update

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/smashah/workspace-updater/pkg/errors"
	"github.com/smashah/workspace-updater/pkg/manifest"
	"github.com/smashah/workspace-updater/pkg/verbose"
	"github.com/smashah/workspace-updater/pkg/warnings"
)

var (
	statFileFunc  = os.Stat
	writeFileFunc = writeFilePreservingPermissions
	renameFunc    = os.Rename
)

const defaultFileMode os.FileMode = 0o644

// WriteManifest re-encodes the manifest and writes it back to its path.
//
// Parameters:
//   - m: The manifest to persist
//
// Returns:
//   - error: *errors.WriteError when encoding or writing fails
func WriteManifest(m *manifest.Manifest) error {
	content, err := m.Marshal()
	if err != nil {
		return &errors.WriteError{Path: m.Path, Err: err}
	}

	if err := writeFileFunc(m.Path, content, defaultFileMode); err != nil {
		return &errors.WriteError{Path: m.Path, Err: err}
	}

	verbose.Printf("Wrote %s (%d bytes)", m.Path, len(content))
	return nil
}

// tempSuffix returns a random suffix for the temp file next to the manifest.
func tempSuffix() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return ".tmp"
	}
	return "." + hex.EncodeToString(b) + ".tmp"
}

// writeFileAtomic writes content to a sibling temp file and renames it over path.
//
// A read-only target is rejected up front since rename may bypass file
// permissions on some systems. The temp file is removed if the rename fails.
func writeFileAtomic(path string, content []byte, mode os.FileMode) error {
	if info, err := statFileFunc(path); err == nil && info.Mode().Perm()&0o200 == 0 {
		return fmt.Errorf("file is read-only: %s", path)
	}

	tempPath := filepath.Join(filepath.Dir(path), filepath.Base(path)+tempSuffix())
	if err := os.WriteFile(tempPath, content, mode); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	// WriteFile honours umask; force the exact mode of the original
	if err := os.Chmod(tempPath, mode); err != nil {
		verbose.Printf("Unable to set mode %v on %s: %v", mode, tempPath, err)
	}

	if err := renameFunc(tempPath, path); err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil {
			warnings.Warnf("failed to clean up temp file %s: %v", tempPath, removeErr)
		}
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// writeFilePreservingPermissions writes path atomically, keeping its mode and owner.
//
// If the file does not exist yet, defaultMode is used. A failed chown is only
// logged, since it needs privileges the caller rarely has.
func writeFilePreservingPermissions(path string, content []byte, defaultMode os.FileMode) error {
	mode := defaultMode
	uid, gid := -1, -1
	if info, err := statFileFunc(path); err == nil {
		mode = info.Mode().Perm()
		uid, gid = fileOwner(info)
	}

	if err := writeFileAtomic(path, content, mode); err != nil {
		return err
	}

	if err := restoreOwner(path, uid, gid); err != nil {
		verbose.Printf("Unable to preserve file ownership for %s: %v", path, err)
	}

	if info, err := statFileFunc(path); err == nil && info.Mode().Perm() != mode {
		warnings.Warnf("file permissions changed for %s: %v -> %v", path, mode, info.Mode().Perm())
	}

	return nil
}
