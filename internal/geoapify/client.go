package geoapify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// API docs: https://apidocs.geoapify.com/
const defaultBaseURL = "https://api.geoapify.com"

// StatusError reports a non-2xx response from Geoapify.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("geoapify %s returned status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// Client talks to the Geoapify geocoding, places and place-details APIs.
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

// Geocode resolves free text to at most limit features.
func (c *Client) Geocode(ctx context.Context, text string, limit int) (*GeocodeAPIResponse, error) {
	params := url.Values{}
	params.Set("text", text)
	params.Set("limit", strconv.Itoa(limit))

	var resp GeocodeAPIResponse
	if err := c.doRequest(ctx, "/v1/geocode/search", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Places lists points of interest of the given categories inside a circle.
func (c *Client) Places(ctx context.Context, categories string, lat, lon float64, radiusMeters, limit int) (*PlacesAPIResponse, error) {
	params := url.Values{}
	params.Set("categories", categories)
	params.Set("filter", fmt.Sprintf("circle:%s,%s,%d", formatCoord(lon), formatCoord(lat), radiusMeters))
	params.Set("limit", strconv.Itoa(limit))

	var resp PlacesAPIResponse
	if err := c.doRequest(ctx, "/v2/places", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PlaceDetails fetches the details features of a single place.
func (c *Client) PlaceDetails(ctx context.Context, placeID string) (*PlaceDetailsAPIResponse, error) {
	params := url.Values{}
	params.Set("id", placeID)
	params.Set("features", "details")

	var resp PlaceDetailsAPIResponse
	if err := c.doRequest(ctx, "/v2/place-details", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values, result any) error {
	u, err := url.Parse(c.baseURL + endpoint)
	if err != nil {
		return fmt.Errorf("parse url: %w", err)
	}
	params.Set("apiKey", c.apiKey)
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
