package registry

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/smashah/workspace-updater/pkg/constants"
	"github.com/smashah/workspace-updater/pkg/verbose"
)

const (
	// DefaultTimeout bounds a single registry request.
	DefaultTimeout = 30 * time.Second

	// abbreviatedMetadata asks the registry for the install-only packument.
	abbreviatedMetadata = "application/vnd.npm.install-v1+json"
)

var (
	// ErrNotFound is returned when the registry has no such package.
	ErrNotFound = stderrors.New("package not found")

	// ErrNoLatest is returned when the packument carries no latest dist-tag.
	ErrNoLatest = stderrors.New("no latest dist-tag")
)

// LatestFetcher resolves the latest published version of a single package.
type LatestFetcher interface {
	Latest(ctx context.Context, name string) (string, error)
}

// Client is an npm registry client.
//
// Fields:
//   - http: The underlying HTTP client, carrying the request timeout
//   - baseURL: Registry root without a trailing slash
type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient creates a registry client.
//
// Parameters:
//   - baseURL: Registry root; constants.DefaultRegistry when empty
//   - timeout: Per-request timeout; DefaultTimeout when zero or negative
//
// Returns:
//   - *Client: Ready-to-use client
func NewClient(baseURL string, timeout time.Duration) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = constants.DefaultRegistry
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// BaseURL returns the registry root used for lookups.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Latest returns the version tagged latest for name.
//
// It performs the following operations:
//   - Builds the packument URL, escaping the scope separator of @scope/name
//   - Issues a single GET asking for abbreviated metadata
//   - Maps 404 to ErrNotFound and any other non-200 status to an error
//   - Decodes dist-tags.latest from the body
//
// Parameters:
//   - ctx: Request context
//   - name: Package name as it appears in the catalog
//
// Returns:
//   - string: The latest version
//   - error: Transport, status or decode failure; the request is never retried
func (c *Client) Latest(ctx context.Context, name string) (string, error) {
	endpoint := c.baseURL + "/" + EscapeName(name)
	verbose.Printf("GET %s", endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", abbreviatedMetadata)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		return "", err
	}

	var doc packument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return "", fmt.Errorf("invalid registry response: %w", err)
	}

	latest := strings.TrimSpace(doc.DistTags.Latest)
	if latest == "" {
		return "", ErrNoLatest
	}

	return latest, nil
}

// EscapeName encodes a package name for use as a registry path segment.
// Scoped names keep their leading @ and have the slash encoded.
func EscapeName(name string) string {
	return url.PathEscape(name)
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("unexpected status %d", code)
	}
}

type packument struct {
	Name     string   `json:"name"`
	DistTags distTags `json:"dist-tags"`
}

type distTags struct {
	Latest string `json:"latest"`
}
