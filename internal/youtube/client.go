package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	// DefaultBaseURL is the YouTube Data API v3 root
	DefaultBaseURL = "https://www.googleapis.com/youtube/v3"

	// StubVideoID is returned for every query in stub mode
	StubVideoID = "IODxDxX7oi4"

	maxResponseBytes = 1 << 20
)

// Client calls the YouTube search endpoint
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	stubMode   bool
}

// NewClient creates a new search client. In stub mode no requests are made
// and every query resolves to StubVideoID.
func NewClient(baseURL, apiKey string, stubMode bool) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		stubMode:   stubMode,
	}
}

// Configured reports whether the client can serve searches.
func (c *Client) Configured() bool {
	return c.stubMode || c.apiKey != ""
}

// SearchFirstVideo asks for exactly one video matching query and returns
// its id. An empty result set yields ErrNoResults.
func (c *Client) SearchFirstVideo(ctx context.Context, query string) (string, error) {
	if c.stubMode {
		return StubVideoID, nil
	}

	params := url.Values{
		"part":       {"snippet"},
		"q":          {query},
		"type":       {"video"},
		"key":        {c.apiKey},
		"maxResults": {"1"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var result searchResponse
	decodeErr := json.Unmarshal(body, &result)

	if resp.StatusCode != http.StatusOK {
		if decodeErr == nil && result.Error != nil {
			return "", fmt.Errorf("youtube returned status %d: %s", resp.StatusCode, result.Error.Message)
		}
		return "", fmt.Errorf("youtube returned status %d: %s", resp.StatusCode, string(body))
	}
	if decodeErr != nil {
		return "", fmt.Errorf("failed to decode response: %w", decodeErr)
	}
	if result.Error != nil {
		return "", fmt.Errorf("youtube reported error %d: %s", result.Error.Code, result.Error.Message)
	}

	if len(result.Items) == 0 {
		return "", ErrNoResults
	}

	videoID := result.Items[0].ID.VideoID
	if videoID == "" {
		return "", fmt.Errorf("youtube result has no videoId")
	}
	return videoID, nil
}
