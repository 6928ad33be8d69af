package registry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/RimshaSaif36/Sunbiz-Data-fetch/pkg/observability"
)

const (
	// DefaultBaseURL is the public Sunbiz search site.
	DefaultBaseURL = "https://search.sunbiz.org"

	// searchPath is the entity-name search results page.
	searchPath = "/Inquiry/CorporationSearch/SearchResults"

	httpTimeout = 10 * time.Second
)

// ErrNetwork is returned when the outbound request cannot be completed
// (connection failure, timeout).
var ErrNetwork = errors.New("network error")

// UpstreamError is returned when the registry answers with a non-success
// status. The status code is carried for diagnostics; the request is not
// retried.
type UpstreamError struct {
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.StatusCode)
}

// Match is one business entity located on the registry's results page.
type Match struct {
	Name           string `json:"name"`
	Status         string `json:"status,omitempty"`
	DocumentNumber string `json:"documentNumber,omitempty"`
	URL            string `json:"url,omitempty"`
}

// Client fetches search-results pages from the registry website.
//
// The registry has no API; Client requests the public HTML search page
// with browser-like headers and hands the body to [Extract]. A single
// request is made per search, with no retries.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient creates a registry client for the given base URL.
// An empty baseURL falls back to DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http:    &http.Client{Timeout: httpTimeout},
		baseURL: baseURL,
	}
}

// SetTimeout overrides the transport timeout for outbound requests.
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.http.Timeout = d
	}
}

// SearchURL builds the results-page URL for query. The query is sent
// exactly as the caller typed it; the registry's own matching may treat
// case and punctuation meaningfully.
func (c *Client) SearchURL(query string) string {
	v := url.Values{}
	v.Set("inquiryType", "EntityName")
	v.Set("searchTerm", query)
	return c.baseURL + searchPath + "?" + v.Encode()
}

// Search fetches the results page for query and extracts its matches.
//
// Returns:
//   - the extracted matches on success (possibly empty; malformed markup
//     degrades to an empty slice, never an error)
//   - [ErrNetwork] when the request cannot be completed
//   - [*UpstreamError] when the registry answers with a non-200 status
func (c *Client) Search(ctx context.Context, query string) ([]Match, error) {
	reqURL := c.SearchURL(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	// The site serves a different (sparser) page to obvious bots.
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	observability.HTTP().OnRequest(ctx, http.MethodGet, req.URL.Host, req.URL.Path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, http.MethodGet, req.URL.Host, req.URL.Path, err)
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	observability.HTTP().OnResponse(ctx, http.MethodGet, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

	// The registry answers 200 with a results page. Any other 2xx body
	// still goes through extraction; redirects the transport did not
	// follow and error statuses are upstream failures.
	if resp.StatusCode >= 300 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	return Extract(string(body), c.baseURL), nil
}
