package manifest

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/smashah/workspace-updater/pkg/errors"
)

const sampleManifest = `# workspace layout
packages:
  - apps/*
  - packages/*

catalog:
  # runtime
  react: ^18.2.0
  typescript: "5.3.3"
  left-pad: ~1.0.0
  legacy: 1.5

onlyBuiltDependencies:
  - esbuild
`

// TestParseCatalogOrder tests that the catalog keeps document order and raw values.
//
// It verifies:
//   - Keys are returned in the order they appear in the file
//   - String values are kept verbatim, including range prefixes
//   - Non-string scalars are kept as their decoded type
func TestParseCatalogOrder(t *testing.T) {
	m, err := Parse("pnpm-workspace.yaml", []byte(sampleManifest))
	require.NoError(t, err)

	assert.Equal(t, []string{"react", "typescript", "left-pad", "legacy"}, m.Catalog.Keys())

	react, _ := m.Catalog.Get("react")
	assert.Equal(t, "^18.2.0", react)

	ts, _ := m.Catalog.Get("typescript")
	assert.Equal(t, "5.3.3", ts)

	legacy, _ := m.Catalog.Get("legacy")
	assert.Equal(t, 1.5, legacy)
}

// TestParseEmptyCatalog tests inputs that yield an empty catalog without error.
func TestParseEmptyCatalog(t *testing.T) {
	cases := map[string]string{
		"empty file":      "",
		"comment only":    "# nothing here\n",
		"no catalog key":  "packages:\n  - apps/*\n",
		"null catalog":    "catalog:\n",
		"explicit null":   "catalog: ~\n",
		"null document":   "~\n",
		"empty mapping":   "catalog: {}\n",
		"catalog aliased": "base: &base {}\ncatalog: *base\n",
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			m, err := Parse("ws.yaml", []byte(content))
			require.NoError(t, err)
			assert.Equal(t, 0, len(m.Catalog.Keys()))
		})
	}
}

// TestParseErrors tests that malformed content is reported as ManifestParseError.
func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"invalid yaml":        "catalog:\n  react: [unterminated\n",
		"root is a list":      "- a\n- b\n",
		"root is a scalar":    "hello\n",
		"catalog is a list":   "catalog:\n  - react\n",
		"catalog is a scalar": "catalog: react\n",
		"multiple documents":  "catalog:\n  foo: ^1.0.0\n---\nother: 1\n",
		"invalid second doc":  "catalog:\n  foo: ^1.0.0\n---\nother: [x\n",
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse("ws.yaml", []byte(content))
			require.Error(t, err)
			assert.True(t, errors.IsManifestParseError(err), "got %T: %v", err, err)
			assert.Contains(t, err.Error(), "ws.yaml")
		})
	}
}

// TestParseDecodeError tests the decode seam.
func TestParseDecodeError(t *testing.T) {
	original := decodeDocumentFunc
	decodeDocumentFunc = func([]byte) (*yaml.Node, error) { return nil, stderrors.New("yaml fail") }
	t.Cleanup(func() { decodeDocumentFunc = original })

	_, err := Parse("ws.yaml", []byte("catalog: {}\n"))
	require.Error(t, err)
	assert.True(t, errors.IsManifestParseError(err))
	assert.Contains(t, err.Error(), "yaml fail")
}

// TestLoad tests reading a manifest from disk.
func TestLoad(t *testing.T) {
	t.Run("reads and parses file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pnpm-workspace.yaml")
		require.NoError(t, os.WriteFile(path, []byte(sampleManifest), 0o644))

		m, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, path, m.Path)
		assert.Len(t, m.Catalog.Keys(), 4)
	})

	t.Run("returns read errors", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read")
		assert.False(t, errors.IsManifestParseError(err))
	})
}

// TestSetAndMarshal tests the in-memory update and round trip.
//
// It verifies:
//   - Set changes both the ordered map and the serialized document
//   - Unknown names are rejected and never added
//   - Non-catalog content, comments and quoting survive the round trip
func TestSetAndMarshal(t *testing.T) {
	m, err := Parse("ws.yaml", []byte(sampleManifest))
	require.NoError(t, err)

	assert.True(t, m.Set("react", "^19.0.0"))
	assert.True(t, m.Set("typescript", "5.4.2"))
	assert.False(t, m.Set("vue", "3.0.0"))

	react, _ := m.Catalog.Get("react")
	assert.Equal(t, "^19.0.0", react)
	_, exists := m.Catalog.Get("vue")
	assert.False(t, exists)

	out, err := m.Marshal()
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, "# workspace layout")
	assert.Contains(t, text, "# runtime")
	assert.Contains(t, text, "react: ^19.0.0")
	assert.Contains(t, text, `typescript: "5.4.2"`)
	assert.Contains(t, text, "left-pad: ~1.0.0")
	assert.Contains(t, text, "onlyBuiltDependencies:")
	assert.Contains(t, text, "  - apps/*")
	assert.NotContains(t, text, "vue")

	reparsed, err := Parse("ws.yaml", out)
	require.NoError(t, err)
	assert.Equal(t, m.Catalog.Keys(), reparsed.Catalog.Keys())
}

// TestSetAliasedValue tests that an aliased entry is replaced without touching the anchor.
func TestSetAliasedValue(t *testing.T) {
	content := "versions:\n  react: &react ^18.0.0\ncatalog:\n  react: *react\n"
	m, err := Parse("ws.yaml", []byte(content))
	require.NoError(t, err)

	value, _ := m.Catalog.Get("react")
	assert.Equal(t, "^18.0.0", value)

	require.True(t, m.Set("react", "^19.0.0"))
	out, err := m.Marshal()
	require.NoError(t, err)

	assert.Contains(t, string(out), "react: &react ^18.0.0")
	assert.Contains(t, string(out), "react: ^19.0.0")
}

// TestSetWithoutCatalog tests Set on a manifest that has no catalog section.
func TestSetWithoutCatalog(t *testing.T) {
	m, err := Parse("ws.yaml", []byte("packages: []\n"))
	require.NoError(t, err)
	assert.False(t, m.Set("react", "1.0.0"))
}

// TestMarshalEmptyDocument tests that an empty document cannot be re-encoded.
func TestMarshalEmptyDocument(t *testing.T) {
	m, err := Parse("ws.yaml", nil)
	require.NoError(t, err)

	_, err = m.Marshal()
	require.Error(t, err)
}

// TestParseMultipleDocumentsMessage tests that a second document is named in the error.
func TestParseMultipleDocumentsMessage(t *testing.T) {
	_, err := Parse("ws.yaml", []byte("catalog:\n  foo: ^1.0.0\n---\nother: 1\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errMultipleDocuments)
}

// TestParseLeadingDocumentMarker tests that a single document with an explicit "---" is accepted.
func TestParseLeadingDocumentMarker(t *testing.T) {
	m, err := Parse("ws.yaml", []byte("---\ncatalog:\n  foo: ^1.0.0\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"foo"}, m.Catalog.Keys())
}

// TestSetAliasedCatalog tests that an aliased catalog is copied before it is changed.
//
// It verifies:
//   - Entries of the anchored mapping are read through the alias
//   - Updating leaves the anchored mapping untouched
//   - The written catalog holds the new value
func TestSetAliasedCatalog(t *testing.T) {
	content := "defaults: &d\n  foo: ^1.0.0\n  bar: 2.0.0\ncatalog: *d\n"
	m, err := Parse("ws.yaml", []byte(content))
	require.NoError(t, err)
	assert.Equal(t, []string{"foo", "bar"}, m.Catalog.Keys())

	require.True(t, m.Set("foo", "^2.0.0"))
	out, err := m.Marshal()
	require.NoError(t, err)

	reparsed, err := Parse("ws.yaml", out)
	require.NoError(t, err)
	foo, _ := reparsed.Catalog.Get("foo")
	assert.Equal(t, "^2.0.0", foo)
	bar, _ := reparsed.Catalog.Get("bar")
	assert.Equal(t, "2.0.0", bar)

	assert.Contains(t, string(out), "defaults: &d\n  foo: ^1.0.0\n")
}

// TestParseSkipsMergeKeys tests that a merge key is not treated as a catalog entry.
func TestParseSkipsMergeKeys(t *testing.T) {
	content := "base: &b\n  foo: ^1.0.0\ncatalog:\n  <<: *b\n  bar: 2.0.0\n"
	m, err := Parse("ws.yaml", []byte(content))
	require.NoError(t, err)

	assert.Equal(t, []string{"bar"}, m.Catalog.Keys())
	assert.False(t, m.Set("<<", "1.0.0"))
}
