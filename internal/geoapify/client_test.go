package geoapify

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("test-key", srv.URL, 2*time.Second)
}

func TestGeocodeSendsTextAndLimit(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/geocode/search" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("text") != "CN Tower" || q.Get("limit") != "1" || q.Get("apiKey") != "test-key" {
			t.Errorf("unexpected query %v", q)
		}
		w.Write([]byte(`{"features":[{"properties":{"lat":43.6426,"lon":-79.3871,"formatted":"CN Tower"}}]}`))
	})

	resp, err := client.Geocode(context.Background(), "CN Tower", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Features) != 1 {
		t.Fatalf("expected 1 feature, got %d", len(resp.Features))
	}
	props := resp.Features[0].Properties
	if props.Lat == nil || *props.Lat != 43.6426 || props.Lon == nil || *props.Lon != -79.3871 {
		t.Fatalf("unexpected coordinates %+v", props)
	}
}

func TestPlacesBuildsCircleFilter(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/places" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		q := r.URL.Query()
		if got := q.Get("filter"); got != "circle:-79.3871,43.6426,5000" {
			t.Errorf("unexpected filter %q", got)
		}
		if q.Get("categories") != "tourism.attraction" || q.Get("limit") != "20" {
			t.Errorf("unexpected query %v", q)
		}
		w.Write([]byte(`{"features":[{"geometry":{"type":"Point","coordinates":[-79.3871,43.6426]},"properties":{"place_id":"abc","name":"CN Tower","categories":["tourism.attraction"]}}]}`))
	})

	resp, err := client.Places(context.Background(), "tourism.attraction", 43.6426, -79.3871, 5000, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Features) != 1 || resp.Features[0].Properties.PlaceID != "abc" {
		t.Fatalf("unexpected features %+v", resp.Features)
	}
	if coords := resp.Features[0].Geometry.Coordinates; len(coords) != 2 || coords[0] != -79.3871 {
		t.Fatalf("unexpected geometry %+v", coords)
	}
}

func TestPlaceDetailsRequestsDetailsFeature(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("id") != "abc" || q.Get("features") != "details" {
			t.Errorf("unexpected query %v", q)
		}
		w.Write([]byte(`{"features":[{"properties":{"feature_type":"details","wiki_and_media":{"image":"https://img.test/a.jpg"},"website":"https://cntower.ca"}}]}`))
	})

	resp, err := client.PlaceDetails(context.Background(), "abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	props := resp.Features[0].Properties
	if props.WikiAndMedia == nil || props.WikiAndMedia.Image != "https://img.test/a.jpg" {
		t.Fatalf("unexpected wiki_and_media %+v", props.WikiAndMedia)
	}
	if props.Website != "https://cntower.ca" {
		t.Fatalf("unexpected website %q", props.Website)
	}
}

func TestNon2xxReturnsStatusError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid apiKey"}`))
	})

	_, err := client.Geocode(context.Background(), "Paris", 1)

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", statusErr.StatusCode)
	}
}

func TestMalformedJSONReturnsError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"features":`))
	})

	if _, err := client.PlaceDetails(context.Background(), "abc"); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestCancelledContextAbortsRequest(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"features":[]}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.Places(ctx, "tourism.attraction", 0, 0, 100, 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
