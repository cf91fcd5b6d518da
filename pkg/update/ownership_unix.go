//go:build unix

package update

import (
	"os"
	"syscall"
)

// fileOwner returns the uid and gid of a manifest, or -1, -1 when unknown.
func fileOwner(info os.FileInfo) (uid, gid int) {
	if stat, ok := info.Sys().(*syscall.Stat_t); ok {
		return int(stat.Uid), int(stat.Gid)
	}
	return -1, -1
}

// restoreOwner chowns path back to uid:gid. Unknown ids are a no-op.
func restoreOwner(path string, uid, gid int) error {
	if uid < 0 || gid < 0 {
		return nil
	}
	return os.Chown(path, uid, gid)
}
