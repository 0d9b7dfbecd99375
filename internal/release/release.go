// Package release looks up the latest published presence release.
package release

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

const (
	// DefaultBaseURL is the GitHub REST API root.
	DefaultBaseURL = "https://api.github.com"

	repository     = "safedep/presence"
	defaultTimeout = 5 * time.Second
)

// Info describes how the running build compares to the latest release.
type Info struct {
	Current string `json:"current"`
	Latest  string `json:"latest"`
	URL     string `json:"url"`
	Newer   bool   `json:"newer"`
}

type Option func(*Checker)

// Checker queries the releases endpoint of the presence repository.
type Checker struct {
	baseURL string
	client  *http.Client
}

func WithBaseURL(baseURL string) Option {
	return func(c *Checker) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(c *Checker) {
		c.client = client
	}
}

func NewChecker(opts ...Option) *Checker {
	c := &Checker{baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(c)
	}
	if c.client == nil {
		c.client = &http.Client{Timeout: defaultTimeout}
	}
	return c
}

type latestRelease struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Check fetches the latest release and compares it with current. A current
// version that is not semver (such as "dev") is never reported as outdated.
func (c *Checker) Check(ctx context.Context, current string) (*Info, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/latest", strings.TrimRight(c.baseURL, "/"), repository)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build release request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest release: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("release lookup returned status %d", resp.StatusCode)
	}

	var rel latestRelease
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return nil, fmt.Errorf("failed to decode release: %w", err)
	}
	if rel.TagName == "" {
		return nil, fmt.Errorf("release has no tag")
	}

	return &Info{
		Current: current,
		Latest:  rel.TagName,
		URL:     rel.HTMLURL,
		Newer:   IsNewer(current, rel.TagName),
	}, nil
}

// IsNewer reports whether latest is a higher semantic version than current.
// Either may omit the leading "v".
func IsNewer(current, latest string) bool {
	current, latest = canonical(current), canonical(latest)
	if !semver.IsValid(current) || !semver.IsValid(latest) {
		return false
	}
	return semver.Compare(latest, current) > 0
}

func canonical(v string) string {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
