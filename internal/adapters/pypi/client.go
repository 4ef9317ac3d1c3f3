// Package pypi implements the package index ports against the PyPI JSON API.
package pypi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.trai.ch/lcr/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// PlaceholderSizeLimit is the artifact size under which a project is treated
// as a name-squatting placeholder.
const PlaceholderSizeLimit = 2048

var insteadRe = regexp.MustCompile(`(?i)please\s+install\s+["'\x60]?([A-Za-z0-9][A-Za-z0-9._-]*)["'\x60]?\s+instead`)

// Client implements ports.PackageIndex. Concurrent lookups of the same name
// share one request.
type Client struct {
	baseURL    string
	httpClient *http.Client
	group      singleflight.Group
}

// NewClient creates a Client for the JSON API rooted at baseURL
// (for example https://pypi.org/pypi).
func NewClient(baseURL string, timeout time.Duration) *Client {
	return newClientWithHTTP(baseURL, &http.Client{Timeout: timeout})
}

func newClientWithHTTP(baseURL string, client *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
	}
}

type projectResponse struct {
	Info struct {
		Name        string `json:"name"`
		Version     string `json:"version"`
		Summary     string `json:"summary"`
		Description string `json:"description"`
	} `json:"info"`
	URLs     []artifact            `json:"urls"`
	Releases map[string][]artifact `json:"releases"`
}

type artifact struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

// Lookup queries the index for name. A 404 is reported as Found=false.
func (c *Client) Lookup(ctx context.Context, name string) (domain.IndexEntry, error) {
	v, err, _ := c.group.Do(name, func() (any, error) {
		return c.query(ctx, name)
	})
	if err != nil {
		return domain.IndexEntry{}, err
	}
	entry, _ := v.(domain.IndexEntry)
	return entry, nil
}

func (c *Client) query(ctx context.Context, name string) (domain.IndexEntry, error) {
	endpoint := c.baseURL + "/" + url.PathEscape(name) + "/json"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return domain.IndexEntry{}, zerr.Wrap(err, domain.ErrIndexRequestFailed.Error())
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.IndexEntry{}, zerr.With(zerr.Wrap(err, domain.ErrIndexRequestFailed.Error()), "name", name)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		return domain.IndexEntry{Name: name, Found: false}, nil
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := zerr.With(zerr.Wrap(domain.ErrIndexRequestFailed, "unexpected status"), "status_code", resp.StatusCode)
		return domain.IndexEntry{}, zerr.With(apiErr, "name", name)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.IndexEntry{}, zerr.Wrap(err, domain.ErrIndexRequestFailed.Error())
	}

	var project projectResponse
	if err := json.Unmarshal(body, &project); err != nil {
		return domain.IndexEntry{}, zerr.With(zerr.Wrap(err, domain.ErrIndexParseFailed.Error()), "name", name)
	}

	return toEntry(name, &project), nil
}

func toEntry(query string, p *projectResponse) domain.IndexEntry {
	entry := domain.IndexEntry{
		Name:            p.Info.Name,
		Found:           true,
		Version:         p.Info.Version,
		Summary:         p.Info.Summary,
		LargestArtifact: largestArtifact(p),
	}
	if entry.Name == "" {
		entry.Name = query
	}

	for _, text := range []string{p.Info.Summary, p.Info.Description} {
		if m := insteadRe.FindStringSubmatch(text); m != nil {
			entry.Placeholder = true
			entry.Suggestion = m[1]
			break
		}
	}
	if entry.LargestArtifact < PlaceholderSizeLimit {
		entry.Placeholder = true
	}
	return entry
}

// largestArtifact returns the biggest file of the current release, or of any
// release when the current one lists no files.
func largestArtifact(p *projectResponse) int64 {
	var largest int64
	for _, a := range p.URLs {
		largest = max(largest, a.Size)
	}
	if len(p.URLs) > 0 {
		return largest
	}
	for _, files := range p.Releases {
		for _, a := range files {
			largest = max(largest, a.Size)
		}
	}
	return largest
}

// Offline implements ports.PackageIndex without network access. Every lookup
// fails, which leaves unmapped imports unresolved.
type Offline struct{}

// Lookup always fails with ErrIndexRequestFailed.
func (Offline) Lookup(_ context.Context, name string) (domain.IndexEntry, error) {
	return domain.IndexEntry{}, zerr.With(zerr.Wrap(domain.ErrIndexRequestFailed, "index disabled"), "name", name)
}
