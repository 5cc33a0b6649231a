package ore

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/DrZoddiak/ore-monitor/config"

	"go.uber.org/zap"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultFileName = "unknown_file"
)

// Client handles communication with the Ore API. Requests are authenticated
// with a short-lived session obtained from the API key; the session is
// created lazily and renewed when it expires.
type Client struct {
	BaseURL    string // API root, e.g. https://ore.spongepowered.org/api/v2
	WebURL     string // website root, used for the file download workaround
	APIKey     string
	UserAgent  string
	HTTPClient *http.Client

	mu             sync.Mutex // guards the session fields; requests may fan out
	session        string
	sessionExpires time.Time
}

// session response of POST /authenticate.
type oreSession struct {
	Session string    `json:"session"`
	Expires time.Time `json:"expires"`
}

// NewClient creates a new Ore API client using the provided configuration.
func NewClient(cfg config.Config) (*Client, error) {
	if cfg.UserAgent == "" {
		return nil, fmt.Errorf("USERAGENT is not configured")
	}
	if cfg.OreAPIKey == "" {
		return nil, fmt.Errorf("ORE_API_KEY is not configured")
	}

	return &Client{
		BaseURL:   strings.TrimSuffix(cfg.OreBaseURL, "/"),
		WebURL:    strings.TrimSuffix(strings.TrimSuffix(cfg.OreBaseURL, "/"), "/api/v2"),
		APIKey:    cfg.OreAPIKey,
		UserAgent: cfg.UserAgent,
		HTTPClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}, nil
}

// authenticate trades the API key for a session token.
func (c *Client) authenticate() error {
	req, err := http.NewRequest(http.MethodPost, c.BaseURL+"/authenticate", nil)
	if err != nil {
		return fmt.Errorf("failed to create auth request: %w", err)
	}
	req.Header.Set("WWW-Authenticate", fmt.Sprintf("OreApi apikey=%s", c.APIKey))
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute auth request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("authentication failed: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var session oreSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return fmt.Errorf("failed to decode session response: %w", err)
	}

	c.session = session.Session
	c.sessionExpires = session.Expires
	return nil
}

func (c *Client) ensureSession() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == "" || !time.Now().Before(c.sessionExpires) {
		if err := c.authenticate(); err != nil {
			return "", err
		}
	}
	return fmt.Sprintf("OreApi session=%s", c.session), nil
}

// makeRequest performs an authenticated API GET. When target is non-nil the
// JSON response body is decoded into it.
func (c *Client) makeRequest(path string, queryParams url.Values, target interface{}) error {
	authHeader, err := c.ensureSession()
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if queryParams != nil {
		req.URL.RawQuery = queryParams.Encode()
	}

	req.Header.Set("Authorization", authHeader)
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("api request failed: %s: status %d (%s), body: %s",
			path, resp.StatusCode, statusHint(resp.StatusCode), string(bodyBytes))
	}

	if target != nil {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return fmt.Errorf("failed to decode json response: %w", err)
		}
	}
	return nil
}

// statusHint maps the API's documented error codes to actionable messages.
func statusHint(code int) string {
	switch code {
	case http.StatusBadRequest:
		return "request not made with a session"
	case http.StatusUnauthorized:
		return "api session missing, invalid, or expired"
	case http.StatusForbidden:
		return "not enough permission for endpoint"
	case http.StatusNotFound:
		return "resource not found, ensure you've used the correct identifiers"
	default:
		return "unexpected status code"
	}
}

// SearchOptions are the filters accepted by the project search endpoint.
type SearchOptions struct {
	Query      string
	Categories []string
	Tags       []string
	Owner      string
	Sort       string
	Relevance  *bool
	Limit      int64
	Offset     uint64
}

func (o SearchOptions) values() url.Values {
	params := url.Values{}
	if o.Query != "" {
		params.Set("q", o.Query)
	}
	for _, category := range o.Categories {
		params.Add("categories", category)
	}
	for _, tag := range o.Tags {
		params.Add("tags", tag)
	}
	if o.Owner != "" {
		params.Set("owner", o.Owner)
	}
	if o.Sort != "" {
		params.Set("sort", o.Sort)
	}
	if o.Relevance != nil {
		params.Set("relevance", fmt.Sprintf("%t", *o.Relevance))
	}
	if o.Limit > 0 {
		params.Set("limit", fmt.Sprintf("%d", o.Limit))
	}
	params.Set("offset", fmt.Sprintf("%d", o.Offset))
	return params
}

// SearchProjects queries /projects with the given filters.
func (c *Client) SearchProjects(opts SearchOptions) (*PaginatedProjectResult, error) {
	var result PaginatedProjectResult
	if err := c.makeRequest("/projects", opts.values(), &result); err != nil {
		return nil, fmt.Errorf("failed to search projects: %w", err)
	}
	return &result, nil
}

// GetProject retrieves a project by its plugin id.
func (c *Client) GetProject(pluginID string) (*Project, error) {
	var project Project
	if err := c.makeRequest("/projects/"+url.PathEscape(pluginID), nil, &project); err != nil {
		return nil, fmt.Errorf("failed to get project %q: %w", pluginID, err)
	}
	return &project, nil
}

// GetProjectVersions lists a project's versions, optionally filtered by tags
// and paginated.
func (c *Client) GetProjectVersions(pluginID string, tags []string, limit, offset int64) (*PaginatedVersionResult, error) {
	params := url.Values{}
	for _, tag := range tags {
		params.Add("tags", tag)
	}
	if limit > 0 {
		params.Set("limit", fmt.Sprintf("%d", limit))
	}
	if offset > 0 {
		params.Set("offset", fmt.Sprintf("%d", offset))
	}

	var result PaginatedVersionResult
	path := fmt.Sprintf("/projects/%s/versions", url.PathEscape(pluginID))
	if err := c.makeRequest(path, params, &result); err != nil {
		return nil, fmt.Errorf("failed to get versions for %q: %w", pluginID, err)
	}
	return &result, nil
}

// GetVersion retrieves a single named version of a project.
func (c *Client) GetVersion(pluginID, name string) (*Version, error) {
	var version Version
	path := fmt.Sprintf("/projects/%s/versions/%s", url.PathEscape(pluginID), url.PathEscape(name))
	if err := c.makeRequest(path, nil, &version); err != nil {
		return nil, fmt.Errorf("failed to get version %q of %q: %w", name, pluginID, err)
	}
	return &version, nil
}

// DownloadPluginFile downloads a plugin version into destDir and returns the
// saved file name. The API exposes no download link, so this goes through the
// website route users click, naming the file from the Content-Disposition
// header.
func (c *Client) DownloadPluginFile(log *zap.SugaredLogger, destDir, owner, slug, versionName string) (string, error) {
	downloadURL := fmt.Sprintf("%s/%s/%s/versions/%s/download",
		c.WebURL, url.PathEscape(owner), url.PathEscape(slug), url.PathEscape(versionName))

	req, err := http.NewRequest(http.MethodGet, downloadURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create download request: %w", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/octet-stream")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to start download from %s: %w", downloadURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("resource not available, ensure you're using a valid ID & Version")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("download failed: status %d", resp.StatusCode)
	}

	fileName := defaultFileName
	if name, ok := extractFilename(resp.Header.Get("Content-Disposition")); ok {
		fileName = name
	}

	if _, err := os.Stat(destDir); os.IsNotExist(err) {
		log.Warnw("Target directory for download does not exist, attempting to create", zap.String("directory", destDir))
		if err := os.MkdirAll(destDir, 0755); err != nil {
			return "", fmt.Errorf("failed to create target directory %q: %w", destDir, err)
		}
	}

	destinationPath := filepath.Join(destDir, fileName)
	outFile, err := os.Create(destinationPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file %q: %w", destinationPath, err)
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, resp.Body); err != nil {
		// Remove the partially downloaded file.
		os.Remove(destinationPath)
		return "", fmt.Errorf("failed to write downloaded content to %q: %w", destinationPath, err)
	}

	return fileName, nil
}

// extractFilename pulls the quoted file name out of a Content-Disposition
// header value.
func extractFilename(header string) (string, bool) {
	start := strings.Index(header, `"`)
	end := strings.LastIndex(header, `"`)
	if start < 0 || start == end {
		return "", false
	}
	return header[start+1 : end], true
}
