package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"wanderstay/internal/models"
)

const geocodingBaseURL = "https://api.mapbox.com/geocoding/v5/mapbox.places"

// MapboxClient provides forward geocoding through the Mapbox Places API.
type MapboxClient struct {
	httpClient  *http.Client
	accessToken string
	baseURL     string
}

// NewMapboxClient constructs a new Mapbox client.
func NewMapboxClient(httpClient *http.Client, accessToken string) *MapboxClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &MapboxClient{httpClient: httpClient, accessToken: accessToken, baseURL: geocodingBaseURL}
}

// Forward geocodes a free-text query and returns the best match as
// (lon, lat). An empty feature set is models.ErrNoGeocodeResult: the caller
// must treat absence as a hard failure, a listing cannot exist without
// coordinates.
func (c *MapboxClient) Forward(ctx context.Context, query string) (float64, float64, error) {
	if strings.TrimSpace(query) == "" {
		return 0, 0, models.ErrNoGeocodeResult
	}

	// Per-call timeout
	ctx, cancel := context.WithTimeout(ctx, 7*time.Second)
	defer cancel()

	params := url.Values{}
	params.Set("access_token", c.accessToken)
	// One result only: the listing keeps a single point.
	params.Set("limit", "1")

	endpoint := fmt.Sprintf("%s/%s.json?%s", c.baseURL, url.PathEscape(query), params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("geocode: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("geocode: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return 0, 0, fmt.Errorf("geocode: http %s: %s", resp.Status, strings.TrimSpace(string(b)))
	}

	var payload struct {
		Features []struct {
			Geometry struct {
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
		} `json:"features"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, 0, fmt.Errorf("geocode: decode response: %w", err)
	}

	if len(payload.Features) == 0 || len(payload.Features[0].Geometry.Coordinates) < 2 {
		return 0, 0, models.ErrNoGeocodeResult
	}
	coords := payload.Features[0].Geometry.Coordinates
	return coords[0], coords[1], nil
}
