package opentripmap

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"easyexplore/internal/models"
)

// API docs: https://dev.opentripmap.org/docs
const defaultBaseURL = "https://api.opentripmap.com/0.1/en"

// Client queries the OpenTripMap autosuggest API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a client. An empty baseURL selects the public endpoint.
func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

type suggestItem struct {
	XID   string `json:"xid"`
	Name  string `json:"name"`
	Kinds string `json:"kinds"`
}

type suggestFeatureCollection struct {
	Features []struct {
		Properties suggestItem `json:"properties"`
	} `json:"features"`
}

// Suggest returns named places matching query near (lat, lon). Unnamed
// entries are skipped and an unrecognised payload yields no suggestions.
func (c *Client) Suggest(ctx context.Context, query string, lat, lon float64) ([]models.Suggestion, error) {
	u, err := url.Parse(c.baseURL + "/places/autosuggest")
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	q := u.Query()
	q.Set("name", query)
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("format", "json")
	q.Set("apikey", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("opentripmap autosuggest returned status %d: %s", resp.StatusCode, truncate(body, 512))
	}

	items, err := decodeSuggestions(body)
	if err != nil {
		return nil, err
	}

	suggestions := make([]models.Suggestion, 0, len(items))
	for _, item := range items {
		if item.Name == "" {
			continue
		}
		suggestions = append(suggestions, models.Suggestion{
			ID:    item.XID,
			Name:  item.Name,
			Kinds: splitKinds(item.Kinds),
		})
	}
	return suggestions, nil
}

// decodeSuggestions accepts both the plain JSON array and GeoJSON forms.
func decodeSuggestions(body []byte) ([]suggestItem, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var items []suggestItem
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("decode suggestions: %w", err)
		}
		return items, nil
	}

	var fc suggestFeatureCollection
	if err := json.Unmarshal(trimmed, &fc); err != nil {
		return nil, fmt.Errorf("decode suggestions: %w", err)
	}
	items := make([]suggestItem, 0, len(fc.Features))
	for _, f := range fc.Features {
		items = append(items, f.Properties)
	}
	return items, nil
}

func splitKinds(raw string) []string {
	kinds := []string{}
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		b = b[:n]
	}
	return string(b)
}
