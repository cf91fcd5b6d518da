// Package manifest locates and decodes the workspace manifest and exposes its catalog.
//
// The manifest is kept as a yaml.v3 node tree so that a rewrite preserves every
// key, comment and ordering outside the catalog. The catalog itself is mirrored
// into an ordered map whose iteration order is the document order:
//
//	m, err := manifest.Load(path)
//	for _, name := range m.Catalog.Keys() {
//	    value, _ := m.Catalog.Get(name)
//	    ...
//	}
//
// Only Set mutates the catalog; it updates the ordered map and the node tree together
// and never adds an entry that was not already present.
package manifest
