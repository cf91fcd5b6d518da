package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smashah/workspace-updater/pkg/constants"
	"github.com/smashah/workspace-updater/pkg/errors"
	"github.com/smashah/workspace-updater/pkg/output"
	"github.com/smashah/workspace-updater/pkg/testutil"
	"github.com/smashah/workspace-updater/pkg/warnings"
)

func runWith(t *testing.T, o Options) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := Run(context.Background(), o, &out)
	return out.String(), err
}

func captureWarnings(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	restore := warnings.SetWarningWriter(&buf)
	t.Cleanup(restore)
	return &buf
}

func testOptions(server *testutil.RegistryServer, dir string) Options {
	return Options{BaseDir: dir, Registry: server.URL, Timeout: 5 * time.Second}
}

// TestRunUpToDate tests the audit of a catalog that matches the registry.
//
// It verifies:
//   - The up-to-date message is printed
//   - --update writes nothing when no entry is outdated
func TestRunUpToDate(t *testing.T) {
	server := testutil.NewRegistryServer(t, map[string]string{"left-pad": "1.0.0"})
	dir := t.TempDir()
	content := "catalog:\n  left-pad: ^1.0.0\n"
	path := testutil.WriteWorkspace(t, dir, content)
	before, err := os.Stat(path)
	require.NoError(t, err)

	o := testOptions(server, dir)
	o.Update = true
	out, err := runWith(t, o)

	require.NoError(t, err)
	assert.Contains(t, out, constants.MessageUpToDate)
	assert.NotContains(t, out, "Updated")
	assert.Equal(t, content, testutil.ReadFile(t, path))
	after, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime())
}

// TestRunReportGroups tests the report for a mixed catalog without writing.
func TestRunReportGroups(t *testing.T) {
	server := testutil.NewRegistryServer(t, map[string]string{"foo": "2.0.0", "bar": "2.0.1"})
	dir := t.TempDir()
	content := "catalog:\n  foo: ^1.0.0\n  bar: 2.0.0\n"
	path := testutil.WriteWorkspace(t, dir, content)

	out, err := runWith(t, testOptions(server, dir))

	require.NoError(t, err)
	major := strings.Index(out, "Major updates (1)")
	patch := strings.Index(out, "Patch updates (1)")
	require.GreaterOrEqual(t, major, 0, out)
	require.Greater(t, patch, major, out)
	assert.Contains(t, out[major:patch], "foo: ^1.0.0 -> 2.0.0")
	assert.Contains(t, out[patch:], "bar: 2.0.0 -> 2.0.1")
	assert.Equal(t, content, testutil.ReadFile(t, path))
}

// TestRunUpdatePatchOnly tests that --update --patch writes only patch entries.
func TestRunUpdatePatchOnly(t *testing.T) {
	server := testutil.NewRegistryServer(t, map[string]string{"foo": "2.0.0", "bar": "2.0.1"})
	dir := t.TempDir()
	path := testutil.WriteWorkspace(t, dir, "catalog:\n  foo: ^1.0.0\n  bar: 2.0.0\n")

	o := testOptions(server, dir)
	o.Update = true
	o.Patch = true
	out, err := runWith(t, o)

	require.NoError(t, err)
	assert.Contains(t, out, "Updated 1 catalog entry in "+path)
	assert.Equal(t, "catalog:\n  foo: ^1.0.0\n  bar: 2.0.1\n", testutil.ReadFile(t, path))
}

// TestRunUpdateAllIsIdempotent tests a full update followed by a second audit.
//
// It verifies:
//   - Every outdated entry is written with its prefix style
//   - Non-catalog content survives
//   - A second run reports nothing outdated and writes nothing
func TestRunUpdateAllIsIdempotent(t *testing.T) {
	server := testutil.NewRegistryServer(t, map[string]string{
		"react":      "19.0.0",
		"zod":        "3.23.0",
		"typescript": "5.3.3",
	})
	dir := t.TempDir()
	path := testutil.WriteWorkspace(t, dir, `packages:
  - apps/*
catalog:
  react: ^18.2.0
  zod: ~3.22.0
  typescript: 5.3.3
`)

	o := testOptions(server, dir)
	o.Update = true
	out, err := runWith(t, o)
	require.NoError(t, err)
	assert.Contains(t, out, "Updated 2 catalog entries")

	assert.Equal(t, `packages:
  - apps/*
catalog:
  react: ^19.0.0
  zod: 3.23.0
  typescript: 5.3.3
`, testutil.ReadFile(t, path))

	out, err = runWith(t, o)
	require.NoError(t, err)
	assert.Contains(t, out, constants.MessageUpToDate)
}

// TestRunUpdateNoMatches tests filters that select nothing.
func TestRunUpdateNoMatches(t *testing.T) {
	server := testutil.NewRegistryServer(t, map[string]string{"foo": "2.0.0"})
	dir := t.TempDir()
	content := "catalog:\n  foo: ^1.0.0\n"
	path := testutil.WriteWorkspace(t, dir, content)

	o := testOptions(server, dir)
	o.Update = true
	o.Minor = true
	out, err := runWith(t, o)

	require.NoError(t, err)
	assert.Contains(t, out, constants.MessageNoMatches)
	assert.Equal(t, content, testutil.ReadFile(t, path))
}

// TestRunDryRun tests that --dry-run lists changes without writing.
func TestRunDryRun(t *testing.T) {
	server := testutil.NewRegistryServer(t, map[string]string{"foo": "1.1.0"})
	dir := t.TempDir()
	content := "catalog:\n  foo: ^1.0.0\n"
	path := testutil.WriteWorkspace(t, dir, content)

	o := testOptions(server, dir)
	o.Update = true
	o.DryRun = true
	out, err := runWith(t, o)

	require.NoError(t, err)
	assert.Contains(t, out, "Dry run: would update 1 catalog entry")
	assert.Contains(t, out, "foo: ^1.0.0 -> ^1.1.0")
	assert.Equal(t, content, testutil.ReadFile(t, path))
}

// TestRunRegistryFailures tests that lookup failures only warn.
func TestRunRegistryFailures(t *testing.T) {
	server := testutil.NewRegistryServer(t, map[string]string{"foo": "1.1.0", "broken": "9.0.0"})
	server.Fail("broken", http.StatusInternalServerError)
	warnBuf := captureWarnings(t)

	dir := t.TempDir()
	testutil.WriteWorkspace(t, dir, "catalog:\n  foo: ^1.0.0\n  broken: 1.0.0\n  missing: 1.0.0\n")

	out, err := runWith(t, testOptions(server, dir))

	require.NoError(t, err)
	assert.Contains(t, out, "foo: ^1.0.0 -> 1.1.0")
	assert.NotContains(t, out, "broken")
	assert.NotContains(t, out, "missing")
	assert.Contains(t, warnBuf.String(), "broken")
	assert.Contains(t, warnBuf.String(), "missing")
}

// TestRunSearchesParents tests discovery from a nested package directory.
func TestRunSearchesParents(t *testing.T) {
	server := testutil.NewRegistryServer(t, map[string]string{"foo": "1.0.0"})
	root := t.TempDir()
	testutil.WriteWorkspace(t, root, "catalog:\n  foo: 1.0.0\n")
	nested := filepath.Join(root, "packages", "web")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	out, err := runWith(t, testOptions(server, nested))

	require.NoError(t, err)
	assert.Contains(t, out, constants.MessageUpToDate)
}

// TestRunExplicitWorkspace tests that -w bypasses discovery.
func TestRunExplicitWorkspace(t *testing.T) {
	server := testutil.NewRegistryServer(t, map[string]string{"foo": "1.0.1"})
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("catalog:\n  foo: 1.0.0\n"), 0o644))

	o := testOptions(server, t.TempDir())
	o.Workspace = path
	out, err := runWith(t, o)

	require.NoError(t, err)
	assert.Contains(t, out, "foo: 1.0.0 -> 1.0.1")
}

// TestRunManifestNotFound tests the error when no manifest exists.
func TestRunManifestNotFound(t *testing.T) {
	server := testutil.NewRegistryServer(t, nil)
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	out, err := runWith(t, testOptions(server, dir))

	require.Error(t, err)
	assert.True(t, errors.IsManifestNotFound(err))
	assert.Empty(t, out)
	assert.Empty(t, server.Requests())
}

// TestRunParseError tests that a malformed manifest fails before any request.
func TestRunParseError(t *testing.T) {
	server := testutil.NewRegistryServer(t, map[string]string{"foo": "2.0.0"})
	dir := t.TempDir()
	content := "catalog: [unclosed\n"
	path := testutil.WriteWorkspace(t, dir, content)

	o := testOptions(server, dir)
	o.Update = true
	_, err := runWith(t, o)

	require.Error(t, err)
	assert.True(t, errors.IsManifestParseError(err))
	assert.Empty(t, server.Requests())
	assert.Equal(t, content, testutil.ReadFile(t, path))
}

// TestRunEmptyCatalog tests a manifest without a catalog.
func TestRunEmptyCatalog(t *testing.T) {
	server := testutil.NewRegistryServer(t, nil)
	dir := t.TempDir()
	testutil.WriteWorkspace(t, dir, "packages:\n  - apps/*\n")

	out, err := runWith(t, testOptions(server, dir))

	require.NoError(t, err)
	assert.Contains(t, out, constants.MessageUpToDate)
	assert.Empty(t, server.Requests())
}

// TestOptionsFilters tests the filter list derived from flags.
func TestOptionsFilters(t *testing.T) {
	assert.Empty(t, Options{}.Filters())
	assert.Equal(t, []string{"major", "patch"}, Options{Major: true, Patch: true}.Filters())
}

// TestRunJSONOutput tests the structured report after an update.
func TestRunJSONOutput(t *testing.T) {
	server := testutil.NewRegistryServer(t, map[string]string{"foo": "2.0.0", "bar": "2.0.1"})
	dir := t.TempDir()
	path := testutil.WriteWorkspace(t, dir, "catalog:\n  foo: ^1.0.0\n  bar: 2.0.0\n")

	o := testOptions(server, dir)
	o.Output = "json"
	o.Update = true
	o.Patch = true
	out, err := runWith(t, o)

	require.NoError(t, err)
	var report output.CatalogReport
	require.NoError(t, json.Unmarshal([]byte(out), &report), out)
	assert.Equal(t, path, report.Manifest)
	assert.Equal(t, 2, report.Summary.Outdated)
	assert.Equal(t, 1, report.Summary.Updated)
	require.Len(t, report.Updates, 1)
	assert.Equal(t, "bar", report.Updates[0].Name)
	assert.NotContains(t, out, "Patch updates")
}

// TestRunInvalidOutput tests that an unknown format fails before any work.
func TestRunInvalidOutput(t *testing.T) {
	server := testutil.NewRegistryServer(t, nil)
	o := testOptions(server, t.TempDir())
	o.Output = "yaml"

	_, err := runWith(t, o)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
	assert.Empty(t, server.Requests())
}
