package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// RegistryServer is a fake npm registry serving dist-tags for a fixed set of packages.
//
// Unknown packages answer 404. Packages marked with Fail answer the given status.
type RegistryServer struct {
	*httptest.Server

	mu       sync.Mutex
	latest   map[string]string
	failures map[string]int
	requests []string
}

// NewRegistryServer starts a fake registry that is closed when the test ends.
//
// Parameters:
//   - t: Testing instance for cleanup registration
//   - latest: Package name to the version served as dist-tags.latest
//
// Returns:
//   - *RegistryServer: The running server; use URL as the registry base
func NewRegistryServer(t *testing.T, latest map[string]string) *RegistryServer {
	t.Helper()

	s := &RegistryServer{latest: make(map[string]string), failures: make(map[string]int)}
	for name, version := range latest {
		s.latest[name] = version
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)

	return s
}

// SetLatest changes the version served for name.
func (s *RegistryServer) SetLatest(name, version string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest[name] = version
}

// Fail makes every request for name answer with status.
func (s *RegistryServer) Fail(name string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[name] = status
}

// Requests returns the package names requested so far, in arrival order.
func (s *RegistryServer) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func (s *RegistryServer) serve(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/")

	s.mu.Lock()
	s.requests = append(s.requests, name)
	status, failing := s.failures[name]
	version, known := s.latest[name]
	s.mu.Unlock()

	switch {
	case failing:
		http.Error(w, http.StatusText(status), status)
	case !known:
		http.Error(w, `{"error":"Not found"}`, http.StatusNotFound)
	default:
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"name":      name,
			"dist-tags": map[string]string{"latest": version},
		})
	}
}

// WriteWorkspace writes a pnpm-workspace.yaml with content into dir and returns its path.
func WriteWorkspace(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, "pnpm-workspace.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write workspace: %v", err)
	}
	return path
}

// ReadFile returns the content of path, failing the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
