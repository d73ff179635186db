package googlebooks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	ErrEmptyQuery          = errors.New("search query is required")
	ErrVolumeNotFound      = errors.New("volume not found in the catalog")
	ErrUpstreamUnavailable = errors.New("book catalog is unavailable")
)

const upstreamTimeout = 10 * time.Second

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: upstreamTimeout},
	}
}

// Search queries the catalog by free text and returns normalized volumes
// plus the upstream total count.
func (c *Client) Search(ctx context.Context, query string, startIndex, maxResults int) ([]Volume, int, error) {
	if query == "" {
		return nil, 0, ErrEmptyQuery
	}
	if c.apiKey == "" {
		return nil, 0, fmt.Errorf("%w: missing API key", ErrUpstreamUnavailable)
	}

	requestURL := fmt.Sprintf("%s/volumes", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "application/json")

	q := req.URL.Query()
	q.Set("q", query)
	if startIndex > 0 {
		q.Set("startIndex", fmt.Sprintf("%d", startIndex))
	}
	if maxResults > 0 {
		q.Set("maxResults", fmt.Sprintf("%d", maxResults))
	}
	q.Set("key", c.apiKey)
	req.URL.RawQuery = q.Encode()

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, 0, fmt.Errorf("%w: non-2xx status %s", ErrUpstreamUnavailable, resp.Status)
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	volumes := make([]Volume, 0, len(searchResp.Items))
	for _, item := range searchResp.Items {
		volumes = append(volumes, normalizeVolume(item))
	}

	return volumes, searchResp.TotalItems, nil
}

// FetchVolume retrieves a single volume by its stable catalog id.
func (c *Client) FetchVolume(ctx context.Context, volumeId string) (Volume, error) {
	if c.apiKey == "" {
		return Volume{}, fmt.Errorf("%w: missing API key", ErrUpstreamUnavailable)
	}

	requestURL := fmt.Sprintf("%s/volumes/%s", c.baseURL, volumeId)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return Volume{}, err
	}
	req.Header.Set("Accept", "application/json")

	q := req.URL.Query()
	q.Set("key", c.apiKey)
	req.URL.RawQuery = q.Encode()

	resp, err := c.http.Do(req)
	if err != nil {
		return Volume{}, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Volume{}, ErrVolumeNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Volume{}, fmt.Errorf("%w: non-2xx status %s", ErrUpstreamUnavailable, resp.Status)
	}

	var item volumeItem
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		return Volume{}, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	return normalizeVolume(item), nil
}
