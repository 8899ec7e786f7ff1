package geo

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"wanderstay/internal/models"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// newTestHTTPClient rewrites every request to the test server so the client
// code keeps using its real base URL.
func newTestHTTPClient(t *testing.T, server *httptest.Server) *http.Client {
	t.Helper()

	parsedURL, err := url.Parse(server.URL)
	if err != nil {
		t.Fatalf("failed to parse server url: %v", err)
	}

	proxyClient := server.Client()
	return &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			clone := req.Clone(req.Context())
			clone.URL.Scheme = parsedURL.Scheme
			clone.URL.Host = parsedURL.Host
			clone.Host = parsedURL.Host
			clone.RequestURI = ""
			return proxyClient.Do(clone)
		}),
	}
}

func featureResponse(lon, lat float64) any {
	return map[string]any{
		"features": []map[string]any{
			{"geometry": map[string]any{"coordinates": []float64{lon, lat}}},
		},
	}
}

func TestForwardReturnsBestMatch(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		if !strings.Contains(r.URL.Path, "Jaipur") {
			t.Errorf("expected query in path, got %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(featureResponse(75.7873, 26.9124))
	}))
	defer server.Close()

	client := NewMapboxClient(newTestHTTPClient(t, server), "test-token")
	lon, lat, err := client.Forward(context.Background(), "Jaipur, India")
	if err != nil {
		t.Fatalf("Forward returned error: %v", err)
	}
	if lon != 75.7873 || lat != 26.9124 {
		t.Fatalf("unexpected coordinates: %f, %f", lon, lat)
	}
	if gotQuery.Get("limit") != "1" {
		t.Errorf("expected limit=1, got %q", gotQuery.Get("limit"))
	}
	if gotQuery.Get("access_token") != "test-token" {
		t.Errorf("expected access token to be sent, got %q", gotQuery.Get("access_token"))
	}
}

func TestForwardEmptyFeatureSet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"features": []any{}})
	}))
	defer server.Close()

	client := NewMapboxClient(newTestHTTPClient(t, server), "test-token")
	_, _, err := client.Forward(context.Background(), "Nowhere At All")
	if !errors.Is(err, models.ErrNoGeocodeResult) {
		t.Fatalf("expected ErrNoGeocodeResult, got %v", err)
	}
}

func TestForwardBlankQuery(t *testing.T) {
	client := NewMapboxClient(nil, "test-token")
	_, _, err := client.Forward(context.Background(), "   ")
	if !errors.Is(err, models.ErrNoGeocodeResult) {
		t.Fatalf("expected ErrNoGeocodeResult, got %v", err)
	}
}

func TestForwardHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewMapboxClient(newTestHTTPClient(t, server), "bad-token")
	_, _, err := client.Forward(context.Background(), "Jaipur, India")
	if err == nil {
		t.Fatal("expected error for http failure")
	}
	if errors.Is(err, models.ErrNoGeocodeResult) {
		t.Fatalf("http failure must not look like an empty result: %v", err)
	}
}

func TestForwardContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(featureResponse(1, 2))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewMapboxClient(newTestHTTPClient(t, server), "test-token")
	_, _, err := client.Forward(ctx, "Jaipur, India")
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
